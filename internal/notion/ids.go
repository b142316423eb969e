package notion

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	dashedIDPattern  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)
	trailingIDInURL  = regexp.MustCompile(`([a-f0-9]{32})(?:[?#]|/?$)`)
	compactIDPattern = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

// ExtractPageID accepts a dashed UUID, a 32-hex id, or a notion.so URL ending
// in one, and returns the dashed form.
func ExtractPageID(input string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch {
	case dashedIDPattern.MatchString(s):
		return s, nil
	case compactIDPattern.MatchString(s):
		return dashID(s), nil
	}
	if m := trailingIDInURL.FindStringSubmatch(s); m != nil {
		return dashID(m[1]), nil
	}
	return "", fmt.Errorf("could not extract page ID from %q", input)
}

func dashID(raw string) string {
	return raw[:8] + "-" + raw[8:12] + "-" + raw[12:16] + "-" + raw[16:20] + "-" + raw[20:]
}
