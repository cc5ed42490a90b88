package engine

import "github.com/merakichess/meraki/internal/board"

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // exact score
	TTLowerBound               // failed high (beta cutoff)
	TTUpperBound               // failed low (no move improved alpha)
)

// TTEntry is a transposition table record. The score is valid only against
// its bound flag and at least Depth plies of remaining search.
type TTEntry struct {
	Key      uint32     // upper 32 bits of the Zobrist hash, for verification
	BestMove board.Move // best move found, NoMove for quiescence stores
	Score    int32
	Depth    int16
	Flag     TTFlag
	Age      uint16 // search generation, for replacement
	used     bool
}

// TranspositionTable is a fixed-size hash table keyed by Zobrist hash. It is
// owned by a single searcher and survives across top-level searches so that
// iterative deepening and consecutive searches from related positions reuse
// earlier work.
type TranspositionTable struct {
	entries []TTEntry
	mask    uint64
	age     uint16

	hits   uint64
	probes uint64
}

// DefaultHashMB is the default table size in megabytes.
const DefaultHashMB = 64

// NewTranspositionTable creates a table with the given size in MB, rounded
// down to a power of two entries.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB <= 0 {
		sizeMB = DefaultHashMB
	}

	const entrySize = 16
	numEntries := roundDownToPowerOf2(uint64(sizeMB) * 1024 * 1024 / entrySize)

	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		mask:    numEntries - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a position by hash. The second return is false when the
// slot is empty or holds a different position.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++

	entry := tt.entries[hash&tt.mask]
	if entry.used && entry.Key == uint32(hash>>32) {
		tt.hits++
		return entry, true
	}
	return TTEntry{}, false
}

// Store saves an entry. The incoming entry wins when the slot is empty, when
// it is at least as deep as the stored one, or when it is at least as new.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move) {
	slot := &tt.entries[hash&tt.mask]
	if slot.used && int(slot.Depth) > depth && slot.Age > tt.age {
		return
	}
	*slot = TTEntry{
		Key:      uint32(hash >> 32),
		BestMove: bestMove,
		Score:    int32(score),
		Depth:    int16(depth),
		Flag:     flag,
		Age:      tt.age,
		used:     true,
	}
}

// NewSearch advances the age counter. Called once per top-level search.
func (tt *TranspositionTable) NewSearch() {
	tt.age++
}

// Age returns the current search generation.
func (tt *TranspositionTable) Age() uint16 {
	return tt.age
}

// Clear wipes the table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.age = 0
	tt.hits = 0
	tt.probes = 0
}

// HitRate returns the probe hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return uint64(len(tt.entries))
}
