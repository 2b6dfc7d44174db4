package app

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// runWithSpinner shows an indeterminate spinner on out until wait returns.
func runWithSpinner(out io.Writer, description string, wait func()) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		wait()
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			bar.Finish()
			return
		case <-ticker.C:
			bar.Add(1)
		}
	}
}
