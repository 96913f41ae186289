package engine

import (
	"sync"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/chessmind/chessmind/internal/board"
)

// Bound classifies a stored score relative to the search window that
// produced it.
type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower // score is a lower bound (beta cutoff)
	BoundUpper // score is an upper bound (alpha never raised)
)

// TTEntry is one transposition table slot.
type TTEntry struct {
	Key   uint64
	Move  board.Move
	Score int32
	Depth int16
	Bound Bound
}

// DefaultTTSize is the default capacity in entries.
const DefaultTTSize = 1 << 22

const ttShardCount = 128

type ttShard struct {
	mu  sync.Mutex
	lru *simplelru.LRU[uint64, TTEntry]
}

// TranspositionTable is a fixed-capacity, least-recently-used cache of
// search results shared by all workers. It is sharded to keep lock
// contention off the hot path; entries are validated by their full 64-bit
// key, so a probe never returns data for a different position.
type TranspositionTable struct {
	shards [ttShardCount]ttShard

	probes atomic.Uint64
	hits   atomic.Uint64
}

// NewTranspositionTable builds a table holding about size entries.
func NewTranspositionTable(size int) *TranspositionTable {
	perShard := size / ttShardCount
	if perShard < 1 {
		perShard = 1
	}
	tt := &TranspositionTable{}
	for i := range tt.shards {
		lru, err := simplelru.NewLRU[uint64, TTEntry](perShard, nil)
		if err != nil {
			panic(err)
		}
		tt.shards[i].lru = lru
	}
	return tt
}

func (tt *TranspositionTable) shard(key uint64) *ttShard {
	return &tt.shards[key&(ttShardCount-1)]
}

// Probe looks up the entry for key. A hit refreshes the entry's recency.
func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	tt.probes.Add(1)
	s := tt.shard(key)
	s.mu.Lock()
	entry, ok := s.lru.Get(key)
	s.mu.Unlock()
	if !ok || entry.Key != key {
		return TTEntry{}, false
	}
	tt.hits.Add(1)
	return entry, true
}

// Store inserts or overwrites the entry for key, evicting the least
// recently used entry of the shard when it is full.
func (tt *TranspositionTable) Store(key uint64, move board.Move, score, depth int, bound Bound) {
	s := tt.shard(key)
	s.mu.Lock()
	s.lru.Add(key, TTEntry{
		Key:   key,
		Move:  move,
		Score: int32(score),
		Depth: int16(depth),
		Bound: bound,
	})
	s.mu.Unlock()
}

// Len returns the current number of stored entries.
func (tt *TranspositionTable) Len() int {
	n := 0
	for i := range tt.shards {
		s := &tt.shards[i]
		s.mu.Lock()
		n += s.lru.Len()
		s.mu.Unlock()
	}
	return n
}

// Clear drops all entries and resets counters.
func (tt *TranspositionTable) Clear() {
	for i := range tt.shards {
		s := &tt.shards[i]
		s.mu.Lock()
		s.lru.Purge()
		s.mu.Unlock()
	}
	tt.probes.Store(0)
	tt.hits.Store(0)
}

// HitRate returns probe statistics since the last Clear.
func (tt *TranspositionTable) HitRate() (probes, hits uint64) {
	return tt.probes.Load(), tt.hits.Load()
}

// Mate scores are ply-relative inside the search but must be stored
// root-relative, otherwise an entry found at a different ply would promise
// a mate of the wrong length.

func scoreToTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}

func scoreFromTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}
