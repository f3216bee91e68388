package cmd

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// startSpinner shows progress on the terminal; the returned func stops it.
// Nothing is drawn in debug mode so log lines stay readable.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr
	_ = s.Color("cyan")

	if !debug {
		s.Start()
	}

	return s, func() {
		if !debug {
			s.Stop()
		}
	}
}
