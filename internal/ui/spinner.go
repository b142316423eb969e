package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	spinnerInterval = 80 * time.Millisecond
	// spinnerShowElapsed is how long a call runs before the elapsed time is shown.
	spinnerShowElapsed = 2 * time.Second
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message on a terminal while a Notion call runs. Off a
// terminal it draws nothing.
type Spinner struct {
	message string
	out     io.Writer
	tty     bool

	stop     chan struct{}
	finished sync.WaitGroup
	once     sync.Once
}

// NewSpinner returns a spinner drawing on stderr.
func NewSpinner(message string) *Spinner {
	return NewSpinnerTo(os.Stderr, message)
}

// NewSpinnerTo returns a spinner drawing on out.
func NewSpinnerTo(out io.Writer, message string) *Spinner {
	s := &Spinner{message: message, out: out, stop: make(chan struct{})}
	if f, ok := out.(*os.File); ok {
		s.tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return s
}

// Start begins drawing. It returns immediately.
func (s *Spinner) Start() {
	if !s.tty {
		return
	}
	s.finished.Add(1)
	go s.run(time.Now())
}

func (s *Spinner) run(started time.Time) {
	defer s.finished.Done()
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.stop:
			fmt.Fprint(s.out, "\r\033[K")
			return
		case <-ticker.C:
			fmt.Fprintf(s.out, "\r%s %s", Bold.Render(spinnerFrames[frame%len(spinnerFrames)]), s.label(time.Since(started)))
		}
	}
}

func (s *Spinner) label(elapsed time.Duration) string {
	if elapsed < spinnerShowElapsed {
		return s.message
	}
	return fmt.Sprintf("%s %s", s.message, Hint(fmt.Sprintf("(%ds)", int(elapsed.Seconds()))))
}

// Stop clears the line and waits for the drawing goroutine. Calling it more
// than once is fine.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	s.finished.Wait()
}
