// Package lsh implements C7: a locality-sensitive hashing index over
// fixed-width 64-bit perceptual hashes, used to generate near-neighbor
// candidates without the quadratic cost of all-pairs comparison (§4.7).
package lsh

import (
	"math/bits"
	"math/rand"

	"github.com/halvard/duplifind/core/record"
)

// seed is fixed so that two runs over the same inputs build byte-identical
// tables and therefore produce identical candidate sets (§4.7 Seeding).
const seed = 0x5155_4e44_4544_4f47

// ID is a dense index into the caller's record slice.
type ID int

// Params bundles the number of tables (L) and bits per table (B).
type Params struct {
	L int
	B int
}

// ParamsFor picks (L, B) from the schedule in §4.7 given a collection size.
// The schedule targets ≥99.9% recall at t ≤ 10; callers that need a larger
// threshold should widen L and shrink B further than this table does, per
// the open tuning question noted in §9 — this implementation does not
// attempt that extrapolation automatically.
func ParamsFor(n int) Params {
	switch {
	case n < 10_000:
		return Params{L: 15, B: 20}
	case n < 50_000:
		return Params{L: 18, B: 18}
	case n < 200_000:
		return Params{L: 20, B: 16}
	default:
		return Params{L: 25, B: 14}
	}
}

// Index is an L-table LSH index over 64-bit hashes. It is built once and
// then read many times; it performs no internal synchronization because
// the grouping stage that owns it runs single-threaded (§5).
type Index struct {
	params Params
	tables []table
}

type table struct {
	positions []int
	buckets   map[uint64][]ID
}

// New builds an empty index sized for n inserts.
func New(n int) *Index {
	params := ParamsFor(n)
	return NewWithParams(params)
}

// NewWithParams builds an empty index with explicit parameters, primarily
// for tests that need to exercise a specific (L, B) pair directly.
func NewWithParams(params Params) *Index {
	rnd := rand.New(rand.NewSource(seed))
	tables := make([]table, params.L)
	for i := range tables {
		tables[i] = table{
			positions: randomPositions(rnd, params.B),
			buckets:   make(map[uint64][]ID),
		}
	}
	return &Index{params: params, tables: tables}
}

// randomPositions draws b distinct bit positions in [0, 64) by shuffling
// all 64 positions and keeping the first b, so each table key gathers a fixed random
// permutation of bit positions (§4.7 Structure).
func randomPositions(rnd *rand.Rand, b int) []int {
	all := make([]int, record.PerceptualHashBits)
	for i := range all {
		all[i] = i
	}
	rnd.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if b > len(all) {
		b = len(all)
	}
	positions := make([]int, b)
	copy(positions, all[:b])
	return positions
}

func tableKey(h uint64, positions []int) uint64 {
	var key uint64
	for i, pos := range positions {
		bit := (h >> uint(pos)) & 1
		key |= bit << uint(i)
	}
	return key
}

// Add inserts hash h under id into every table.
func (idx *Index) Add(id ID, h record.PerceptualHash) {
	hv := uint64(h)
	for i := range idx.tables {
		key := tableKey(hv, idx.tables[i].positions)
		idx.tables[i].buckets[key] = append(idx.tables[i].buckets[key], id)
	}
}

// BuildFrom does a one-shot bulk insertion from an (id, hash) sequence.
func BuildFrom(n int, pairs func(yield func(ID, record.PerceptualHash))) *Index {
	idx := New(n)
	pairs(idx.Add)
	return idx
}

// Query returns every inserted ID that collides with h in at least one
// table — the candidate set for a subsequent exact Hamming-distance check.
// The threshold argument is accepted for symmetry with the spec's
// query(h, t) signature but does not affect which table keys are probed;
// filtering by the exact distance happens at the caller, which is why the
// LSH index contract (§3 Invariants) guarantees h and every hash at
// distance 0 come back regardless of t.
func (idx *Index) Query(h record.PerceptualHash, _ int) map[ID]bool {
	hv := uint64(h)
	seen := make(map[ID]bool)
	for i := range idx.tables {
		key := tableKey(hv, idx.tables[i].positions)
		for _, id := range idx.tables[i].buckets[key] {
			seen[id] = true
		}
	}
	return seen
}

// Hamming returns the number of differing bits between two perceptual
// hashes.
func Hamming(a, b record.PerceptualHash) int {
	return bits.OnesCount64(uint64(a) ^ uint64(b))
}
