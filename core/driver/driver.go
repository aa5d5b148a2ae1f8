// Package driver implements C4: fanning analyzer work across a bounded
// worker pool with backpressure, progress reporting, and cooperative
// cancellation (§4.4). Grouping stages run afterward, single-threaded, on
// the snapshot this stage produces (§5).
package driver

import (
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/halvard/duplifind/core/analyzer"
	"github.com/halvard/duplifind/core/cache"
	"github.com/halvard/duplifind/core/record"
)

// progressInterval is the rate limit on progress callback delivery (§4.4):
// at most once per this interval, plus one final call at completion.
const progressInterval = 500 * time.Millisecond

// emaAlpha weights the most recent processing-rate sample against the
// running average (§9's "EMA over recent batches").
const emaAlpha = 0.3

// Progress is the running state reported to the caller's callback.
type Progress struct {
	Found      int
	Analyzed   int
	CacheHits  int
	Errors     int
	RatePerSec float64
	ETA        time.Duration
	Final      bool
}

// ProgressFunc receives Progress updates. It is called from a single
// dedicated collector goroutine, so implementations need no locking of
// their own (§9 "Thread-pool fan-out").
type ProgressFunc func(Progress)

// Options configures one Run.
type Options struct {
	Workers   int
	UseCache  bool
	Cache     *cache.Store
	Progress  ProgressFunc
	Cancelled func() bool
}

// Result is everything the driver produced over one input path set.
type Result struct {
	Records   []record.ImageRecord
	Errors    []record.ErrorRecord
	CacheHits int
	Partial   bool
}

// Driver runs analyzer work across N worker goroutines with a bounded
// input queue.
type Driver struct {
	analyzer *analyzer.Analyzer
}

type outcome struct {
	rec      record.ImageRecord
	errRec   *record.ErrorRecord
	cacheHit bool
}

// New creates a Driver backed by the given analyzer.
func New(a *analyzer.Analyzer) *Driver {
	return &Driver{analyzer: a}
}

// Run dispatches one analyzer call per path, respecting opts.Workers of
// concurrency and a bounded queue (4x workers, §4.4), and collects results
// through a single collector goroutine that also owns progress reporting.
func (d *Driver) Run(paths []string, opts Options) Result {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	cancelled := opts.Cancelled
	if cancelled == nil {
		cancelled = func() bool { return false }
	}

	queueDepth := workers * 4
	jobs := make(chan string, queueDepth)
	outcomes := make(chan outcome, queueDepth)

	group := &errgroup.Group{}
	group.SetLimit(workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		group.Go(func() error {
			defer wg.Done()
			for path := range jobs {
				if cancelled() {
					continue
				}
				rec, errRec, cacheHit := d.analyzeOne(path, opts)
				outcomes <- outcome{rec: rec, errRec: errRec, cacheHit: cacheHit}
			}
			return nil
		})
	}

	go func() {
		defer close(jobs)
		for _, p := range paths {
			if cancelled() {
				return
			}
			jobs <- p
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	result := d.collect(paths, outcomes, opts, cancelled)
	_ = group.Wait()
	return result
}

func (d *Driver) analyzeOne(path string, opts Options) (record.ImageRecord, *record.ErrorRecord, bool) {
	if opts.UseCache && opts.Cache != nil {
		info, statErr := statFor(path)
		if statErr == nil {
			rec, errRec, hit := opts.Cache.GetOrCompute(path, info.size, info.modTime, d.analyzer.Analyze)
			return rec, errRec, hit
		}
	}
	rec, errRec := d.analyzer.Analyze(path)
	return rec, errRec, false
}

func (d *Driver) collect(paths []string, outcomes <-chan outcome, opts Options, cancelled func() bool) Result {
	var result Result
	found := len(paths)
	analyzedCount := 0
	lastReport := time.Now()
	lastAnalyzed := 0
	rate := 0.0

	report := func(final bool) {
		if opts.Progress == nil {
			return
		}
		eta := time.Duration(0)
		if rate > 0 {
			remaining := float64(found - analyzedCount)
			eta = time.Duration(remaining/rate) * time.Second
		}
		opts.Progress(Progress{
			Found:      found,
			Analyzed:   analyzedCount,
			CacheHits:  result.CacheHits,
			Errors:     len(result.Errors),
			RatePerSec: rate,
			ETA:        eta,
			Final:      final,
		})
	}

	for o := range outcomes {
		analyzedCount++
		if o.cacheHit {
			result.CacheHits++
		}
		if o.errRec != nil {
			result.Errors = append(result.Errors, *o.errRec)
		}
		if o.rec.Path != "" {
			result.Records = append(result.Records, o.rec)
		}

		if since := time.Since(lastReport); since >= progressInterval {
			instRate := float64(analyzedCount-lastAnalyzed) / since.Seconds()
			if rate == 0 {
				rate = instRate
			} else {
				rate = emaAlpha*instRate + (1-emaAlpha)*rate
			}
			lastReport = time.Now()
			lastAnalyzed = analyzedCount
			report(false)
		}
	}

	result.Partial = cancelled()
	report(true)
	return result
}

type statInfo struct {
	size    int64
	modTime time.Time
}

func statFor(path string) (statInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return statInfo{}, err
	}
	return statInfo{size: info.Size(), modTime: info.ModTime()}, nil
}
