package orchestrator

import "github.com/halvard/duplifind/core/record"

// GroupKind distinguishes the two grouping algorithms a DuplicateGroup came
// from (§3).
type GroupKind string

const (
	GroupExact      GroupKind = "EXACT"
	GroupPerceptual GroupKind = "PERCEPTUAL"
)

// DuplicateGroup is one duplicate set, exact or perceptual, with a dense ID
// assigned per scan and members ordered by quality (§3, §4.5).
type DuplicateGroup struct {
	ID                    int
	Kind                  GroupKind
	Members               []record.ImageRecord
	PotentialSavingsBytes int64
}

// ScanResult is everything one Scan call produces (§4.9).
type ScanResult struct {
	Records       []record.ImageRecord
	Errors        []record.ErrorRecord
	Groups        []DuplicateGroup
	CacheHits     int
	CacheDegraded bool
	Partial       bool
	ModeUsed      Mode
	UsedLSH       bool
}
