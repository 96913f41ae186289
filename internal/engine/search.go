// Package engine implements iterative-deepening alpha-beta search with a
// shared transposition table and lazy-SMP parallelism.
package engine

import "github.com/chessmind/chessmind/internal/board"

const (
	// Infinity bounds the alpha-beta window.
	Infinity = 1 << 20

	// MateScore is the value of delivering mate at the root. Mates deeper
	// in the tree score MateScore - ply, so shorter mates win.
	MateScore = 1 << 19

	// MaxPly caps the search stack depth, extensions included.
	MaxPly = 64

	// DrawScore is returned for repetitions, fifty-move and stalemate
	// positions inside the tree.
	DrawScore = 0
)

// Search feature switches. All on in normal play; tests flip them off to
// compare heuristic search against plain alpha-beta.
var (
	EnableNullMove = true
	EnableLMR      = true
)

// MateIn converts a mate score to moves-to-mate from the root, negative when
// the side to move is getting mated. ok is false for non-mate scores.
func MateIn(score int) (moves int, ok bool) {
	if score > MateScore-MaxPly {
		return (MateScore - score + 1) / 2, true
	}
	if score < -MateScore+MaxPly {
		return -(MateScore + score + 1) / 2, true
	}
	return 0, false
}

// PVLine is a triangular principal-variation accumulator.
type PVLine struct {
	moves [MaxPly]board.Move
	count int
}

// Set records m followed by the child's continuation.
func (pv *PVLine) Set(m board.Move, rest *PVLine) {
	pv.moves[0] = m
	copy(pv.moves[1:], rest.moves[:rest.count])
	pv.count = rest.count + 1
}

// Clear empties the line.
func (pv *PVLine) Clear() { pv.count = 0 }

// Moves returns the line, best move first.
func (pv *PVLine) Moves() []board.Move { return pv.moves[:pv.count] }

func (pv *PVLine) String() string {
	s := ""
	for i, m := range pv.Moves() {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}
