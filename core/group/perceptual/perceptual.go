// Package perceptual implements C8: grouping ImageRecords by Hamming
// distance between perceptual hashes, accelerated by an LSH index (§4.7)
// for large collections, falling back to brute-force all-pairs comparison
// otherwise.
package perceptual

import (
	"sort"

	"github.com/halvard/duplifind/core/lsh"
	"github.com/halvard/duplifind/core/quality"
	"github.com/halvard/duplifind/core/record"
)

// Mode selects the candidate-enumeration strategy (§4.8 mode selector).
type Mode int

const (
	// ModeAuto picks LSH when the filtered input is large, brute force
	// otherwise (the n ≥ 5000 cutoff from §4.8).
	ModeAuto Mode = iota
	// ModeForceLSH always builds and queries the LSH index.
	ModeForceLSH
	// ModeForceBruteForce always does the full O(n^2) comparison.
	ModeForceBruteForce
)

// lshCutoff is the n ≥ 5000 threshold from §4.8 at which ModeAuto switches
// to the LSH path.
const lshCutoff = 5000

// Group is one perceptual-duplicate set, ordered by quality with the best
// representative first.
type Group struct {
	Members               []record.ImageRecord
	PotentialSavingsBytes int64
}

// Options configures Group.
type Options struct {
	Threshold  int
	Mode       Mode
	ExcludeSet map[string]bool
	// Cancelled is polled inside the candidate-enumeration loops so a scan
	// can be aborted cooperatively (§5).
	Cancelled func() bool
}

// UsedLSH reports, alongside the groups, which candidate-enumeration path
// actually ran — the orchestrator surfaces this as part of the final mode
// selections (§4.9 ScanResult).
type Result struct {
	Groups  []Group
	UsedLSH bool
}

// Build runs the full C8 algorithm: filter to eligible records, enumerate
// candidate pairs, union same-distance-class members, and collect
// equivalence classes of size ≥ 2 as groups (§4.8).
func Build(records []record.ImageRecord, opts Options) Result {
	filtered := make([]record.ImageRecord, 0, len(records))
	for _, r := range records {
		if !r.HasPHash {
			continue
		}
		if opts.ExcludeSet != nil && opts.ExcludeSet[r.Path] {
			continue
		}
		filtered = append(filtered, r)
	}

	useLSH := opts.Mode == ModeForceLSH || (opts.Mode == ModeAuto && len(filtered) >= lshCutoff)

	uf := newUnionFind(len(filtered))
	cancelled := opts.Cancelled
	if cancelled == nil {
		cancelled = func() bool { return false }
	}

	if useLSH {
		enumerateLSH(filtered, opts.Threshold, uf, cancelled)
	} else {
		enumerateBruteForce(filtered, opts.Threshold, uf, cancelled)
	}

	groups := collectGroups(filtered, uf)
	return Result{Groups: groups, UsedLSH: useLSH}
}

func enumerateBruteForce(records []record.ImageRecord, threshold int, uf *unionFind, cancelled func() bool) {
	for i := 0; i < len(records); i++ {
		if cancelled() {
			return
		}
		for j := i + 1; j < len(records); j++ {
			if lsh.Hamming(records[i].PerceptualHash, records[j].PerceptualHash) <= threshold {
				uf.union(i, j)
			}
		}
	}
}

func enumerateLSH(records []record.ImageRecord, threshold int, uf *unionFind, cancelled func() bool) {
	idx := lsh.New(len(records))
	for i, r := range records {
		idx.Add(lsh.ID(i), r.PerceptualHash)
	}

	for i, r := range records {
		if cancelled() {
			return
		}
		candidates := idx.Query(r.PerceptualHash, threshold)
		for cand := range candidates {
			j := int(cand)
			if j <= i {
				continue
			}
			if lsh.Hamming(r.PerceptualHash, records[j].PerceptualHash) <= threshold {
				uf.union(i, j)
			}
		}
	}
}

func collectGroups(records []record.ImageRecord, uf *unionFind) []Group {
	classes := make(map[int][]record.ImageRecord)
	for i, r := range records {
		root := uf.find(i)
		classes[root] = append(classes[root], r)
	}

	var groups []Group
	for _, members := range classes {
		if len(members) < 2 {
			continue
		}
		ordered := append([]record.ImageRecord(nil), members...)
		quality.SortMembers(ordered)

		var savings int64
		for _, m := range ordered[1:] {
			savings += m.SizeBytes
		}
		groups = append(groups, Group{Members: ordered, PotentialSavingsBytes: savings})
	}

	smallestPath := func(members []record.ImageRecord) string {
		p := members[0].Path
		for _, m := range members[1:] {
			if m.Path < p {
				p = m.Path
			}
		}
		return p
	}
	sort.Slice(groups, func(i, j int) bool {
		return smallestPath(groups[i].Members) < smallestPath(groups[j].Members)
	})
	return groups
}
