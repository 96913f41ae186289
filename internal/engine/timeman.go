package engine

import (
	"time"

	"github.com/chessmind/chessmind/internal/board"
)

// Limits bounds one search. Zero values mean unconstrained; a search with
// neither a depth nor any time control runs to the depth cap.
type Limits struct {
	Depth    int
	MoveTime time.Duration

	WhiteTime time.Duration
	BlackTime time.Duration
	WhiteInc  time.Duration
	BlackInc  time.Duration
}

// budget picks the wall-clock allowance for the side to move, or 0 for an
// unbounded search. Clock games spend a fixed fraction of the remaining
// time plus half the increment, with a safety floor so the flag never
// falls on the allocation itself.
func (l Limits) budget(side board.Color) time.Duration {
	if l.MoveTime > 0 {
		return l.MoveTime
	}

	remaining, inc := l.WhiteTime, l.WhiteInc
	if side == board.Black {
		remaining, inc = l.BlackTime, l.BlackInc
	}
	if remaining <= 0 {
		return 0
	}

	alloc := remaining/25 + inc/2
	if ceiling := remaining / 2; alloc > ceiling {
		alloc = ceiling
	}
	if alloc < 5*time.Millisecond {
		alloc = 5 * time.Millisecond
	}
	return alloc
}

// depthLimit resolves the target depth for the iterative deepening loop.
func (l Limits) depthLimit() int {
	if l.Depth > 0 && l.Depth < MaxPly {
		return l.Depth
	}
	return MaxPly - 1
}
