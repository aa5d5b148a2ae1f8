package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/halvard/duplifind/core/driver"
)

const barThrottle = 100 * time.Millisecond

// progressReporter renders driver.Progress updates to a terminal spinner.
// It runs in indeterminate spinner mode rather than a bounded bar; the
// found/analyzed counts appear in the spinner's description text.
type progressReporter struct {
	bar *progressbar.ProgressBar
}

func newProgressReporter(enabled bool) *progressReporter {
	if !enabled {
		return &progressReporter{}
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(barThrottle),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
	)
	return &progressReporter{bar: bar}
}

func (p *progressReporter) report(progress driver.Progress) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(0)
	p.bar.Describe(fmt.Sprintf(
		"analyzed %d/%d (%d cached, %d errors) — %.1f files/s, eta %s",
		progress.Analyzed, progress.Found, progress.CacheHits, progress.Errors,
		progress.RatePerSec, progress.ETA.Round(time.Second),
	))
	if progress.Final {
		_ = p.bar.Finish()
	}
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
