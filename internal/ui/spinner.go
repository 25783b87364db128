package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// spinner animates a progress indicator on stderr, leaving stdout free for
// the command output.
type spinner struct {
	message string
	stop    chan struct{}
	stopped chan struct{}
}

func startSpinner(message string) *spinner {
	s := &spinner{
		message: message,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.spin()
	return s
}

func (s *spinner) spin() {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-s.stop:
			fmt.Fprint(os.Stderr, "\r\033[K")
			close(s.stopped)
			return
		case <-ticker.C:
			glyph := color.CyanString(spinnerFrames[frame%len(spinnerFrames)])
			fmt.Fprintf(os.Stderr, "\r%s %s", glyph, s.message)
			frame++
		}
	}
}

// halt stops the animation and waits for the line to be cleared.
func (s *spinner) halt() {
	close(s.stop)
	<-s.stopped
}

// ShowSpinner animates message on stderr while fn runs.
func ShowSpinner(message string, fn func() error) error {
	s := startSpinner(message)
	defer s.halt()
	return fn()
}
