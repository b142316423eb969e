package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/keeponfirst/localbrain/internal/ui"
)

// shouldPromptForConfirm is true when both stdin and stdout are terminals and
// --json is off.
func shouldPromptForConfirm() bool {
	if isJSONOutput() {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
}

func promptForConfirm(message string) bool {
	if !shouldPromptForConfirm() {
		return false
	}
	return readConfirm(os.Stdin, os.Stdout, message)
}

// readConfirm asks message on out and reports whether the answer read from in
// is "y" or "yes". EOF and anything else mean no.
func readConfirm(in io.Reader, out io.Writer, message string) bool {
	if message == "" {
		message = "Continue?"
	}
	fmt.Fprintf(out, "%s %s ", message, ui.Hint("[y/N]"))
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes":
		return true
	}
	return false
}
