// Package orchestrator implements C9: composing C1 (discovery) through C4
// (the parallel driver) and then C6/C8 (exact and perceptual grouping)
// behind a single run-scan operation (§4.9).
package orchestrator

import (
	"os"
	"path/filepath"

	"github.com/halvard/duplifind/core/analyzer"
	"github.com/halvard/duplifind/core/decoder"
	"github.com/halvard/duplifind/core/discovery"
	"github.com/halvard/duplifind/core/driver"
	"github.com/halvard/duplifind/core/group/exact"
	"github.com/halvard/duplifind/core/group/perceptual"
	"github.com/halvard/duplifind/core/infrastructure/log"
	"github.com/halvard/duplifind/core/record"
)

// Orchestrator exposes the single public scan operation over a fixed
// discovery/analysis pipeline. Construct one per process; Scan may be
// called repeatedly with different roots and options.
type Orchestrator struct {
	walker *discovery.Walker
	driver *driver.Driver
	logger log.Logger
}

// New builds an Orchestrator over the given decoder capability. logger may
// be nil, in which case discovery and cache-degradation warnings are
// dropped rather than logged.
func New(dec decoder.Decoder, logger log.Logger) *Orchestrator {
	return &Orchestrator{
		walker: discovery.New(nil, logger),
		driver: driver.New(analyzer.New(dec)),
		logger: logger,
	}
}

// Scan runs one full pipeline pass over root (§4.9). It fails fast with a
// ScanError if root or opts is invalid (§6, §7); otherwise it always
// returns a ScanResult, partial if cancellation interrupted it.
func (o *Orchestrator) Scan(root string, opts Options) (ScanResult, error) {
	if err := opts.validate(root); err != nil {
		return ScanResult{}, err
	}

	cancelled := func() bool { return opts.CancelToken.Cancelled() }

	paths, err := o.walker.Walk(root, opts.Recursive)
	if err != nil {
		return ScanResult{}, &ScanError{Kind: record.ErrorIO, Message: err.Error()}
	}

	driverResult := o.driver.Run(paths, driver.Options{
		Workers:   opts.Workers,
		UseCache:  opts.UseCache,
		Cache:     opts.Cache,
		Progress:  opts.Progress,
		Cancelled: cancelled,
	})

	result := ScanResult{
		Records:   driverResult.Records,
		Errors:    driverResult.Errors,
		CacheHits: driverResult.CacheHits,
		Partial:   driverResult.Partial,
		ModeUsed:  opts.Mode,
	}
	if opts.Cache != nil && opts.Cache.Degraded() {
		result.CacheDegraded = true
		if o.logger != nil {
			o.logger.Warn("orchestrator: cache degraded during scan, results unaffected")
		}
	}

	if cancelled() {
		// Cancellation landed before grouping started: §5 says grouping is
		// skipped outright rather than run over a partial record set.
		result.Partial = true
		return result, nil
	}

	groups, usedLSH := o.group(result.Records, opts, cancelled)
	result.Groups = groups
	result.UsedLSH = usedLSH
	result.Partial = result.Partial || cancelled()
	return result, nil
}

// group runs C6 (exact grouping) and/or C8 (perceptual grouping) according
// to opts.Mode, excludes exact-group members from perceptual grouping
// (§3, §4.6), and assigns dense IDs over the concatenated, stably-ordered
// result (§4.8 Group finalization).
func (o *Orchestrator) group(records []record.ImageRecord, opts Options, cancelled func() bool) ([]DuplicateGroup, bool) {
	var groups []DuplicateGroup
	var exactMemberPaths map[string]bool

	if opts.Mode == ModeExactOnly || opts.Mode == ModeBoth {
		exactResult := exact.Build(records)
		exactMemberPaths = exactResult.MemberPaths
		for _, g := range exactResult.Groups {
			groups = append(groups, DuplicateGroup{
				Kind:                  GroupExact,
				Members:               g.Members,
				PotentialSavingsBytes: g.PotentialSavingsBytes,
			})
		}
	}

	usedLSH := false
	if opts.Mode == ModePerceptualOnly || opts.Mode == ModeBoth {
		pResult := perceptual.Build(records, perceptual.Options{
			Threshold:  opts.Threshold,
			Mode:       opts.LSHMode.toPerceptualMode(),
			ExcludeSet: exactMemberPaths,
			Cancelled:  cancelled,
		})
		usedLSH = pResult.UsedLSH
		for _, g := range pResult.Groups {
			groups = append(groups, DuplicateGroup{
				Kind:                  GroupPerceptual,
				Members:               g.Members,
				PotentialSavingsBytes: g.PotentialSavingsBytes,
			})
		}
	}

	for i := range groups {
		groups[i].ID = i
	}
	return groups, usedLSH
}

func isAbs(path string) bool {
	return filepath.IsAbs(path)
}

func mustBeDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return badArgument("root does not exist: " + err.Error())
	}
	if !info.IsDir() {
		return badArgument("root is not a directory")
	}
	return nil
}
