// Package exact implements C6: bucketing ImageRecords by content hash and
// emitting one DuplicateGroup per bucket of size ≥ 2.
package exact

import (
	"sort"

	"github.com/halvard/duplifind/core/quality"
	"github.com/halvard/duplifind/core/record"
)

// Group describes one exact-duplicate set: every member shares the same
// 32-byte content hash, ordered by quality (§4.5) with the best
// representative first.
type Group struct {
	ContentHash           record.ContentHash
	Members               []record.ImageRecord
	PotentialSavingsBytes int64
}

// Result is the output of Build: the groups plus the set of paths that
// ended up in one, for the perceptual stage's exclusion set (§4.6).
type Result struct {
	Groups      []Group
	MemberPaths map[string]bool
}

// Build partitions records by content hash and returns one group per
// partition with at least two members, ordered by smallest-member-path so
// group IDs are assigned deterministically downstream.
func Build(records []record.ImageRecord) Result {
	buckets := make(map[record.ContentHash][]record.ImageRecord)
	for _, r := range records {
		buckets[r.ContentHash] = append(buckets[r.ContentHash], r)
	}

	memberPaths := make(map[string]bool)
	var groups []Group
	for hash, members := range buckets {
		if len(members) < 2 {
			continue
		}
		ordered := append([]record.ImageRecord(nil), members...)
		quality.SortMembers(ordered)

		var savings int64
		for _, m := range ordered[1:] {
			savings += m.SizeBytes
		}
		for _, m := range ordered {
			memberPaths[m.Path] = true
		}
		groups = append(groups, Group{
			ContentHash:           hash,
			Members:               ordered,
			PotentialSavingsBytes: savings,
		})
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

	return Result{Groups: groups, MemberPaths: memberPaths}
}
