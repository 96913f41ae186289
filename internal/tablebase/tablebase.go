// Package tablebase defines the endgame tablebase boundary: a Prober that
// adjudicates few-piece positions, plus caching layers around it. The
// package ships no probing backend; callers plug one in.
package tablebase

import (
	"context"
	"errors"

	"github.com/chessmind/chessmind/internal/board"
)

// WDL is a win/draw/loss verdict from the side to move's perspective.
type WDL int8

const (
	Loss WDL = -1
	Draw WDL = 0
	Win  WDL = 1
)

func (w WDL) String() string {
	switch w {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "draw"
	}
}

// Negate flips the verdict to the opponent's perspective.
func (w WDL) Negate() WDL { return -w }

// ProbeResult is a tablebase verdict for one position.
type ProbeResult struct {
	WDL WDL
	// DTZ is the distance to zeroing the halfmove clock under optimal
	// play, when the backend provides it. 0 otherwise.
	DTZ int
}

// ErrNotFound means the position is not covered by the tablebase.
var ErrNotFound = errors.New("tablebase: position not found")

// Prober answers exact verdicts for positions with few enough pieces.
type Prober interface {
	// MaxPieces is the largest total piece count the prober covers.
	MaxPieces() int
	// Probe returns the verdict for pos. ErrNotFound when uncovered.
	Probe(ctx context.Context, pos *board.Position) (ProbeResult, error)
}

// NoopProber covers nothing. It stands in where a Prober is required but no
// backend is configured.
type NoopProber struct{}

func (NoopProber) MaxPieces() int { return 0 }

func (NoopProber) Probe(context.Context, *board.Position) (ProbeResult, error) {
	return ProbeResult{}, ErrNotFound
}

// Probeable reports whether pos is small enough for the prober.
func Probeable(p Prober, pos *board.Position) bool {
	return p != nil && pos.All.Count() <= p.MaxPieces()
}
