package engine

import (
	"sync/atomic"
	"testing"

	"github.com/matryer/is"

	"github.com/chessmind/chessmind/internal/board"
)

func newTestWorker(t *testing.T, fen string, tt *TranspositionTable) *Worker {
	t.Helper()
	var stop atomic.Bool
	return NewWorker(0, position(t, fen), nil, tt, &stop)
}

func searchToDepth(w *Worker, depth int) SearchResult {
	var last SearchResult
	w.Iterate(1, depth, func(r SearchResult) { last = r })
	return last
}

func TestSearchFindsMateInOne(t *testing.T) {
	is := is.New(t)
	w := newTestWorker(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1", NewTranspositionTable(1<<14))

	r := searchToDepth(w, 3)
	is.Equal(r.Move.String(), "a1a8")
	moves, mate := MateIn(r.Score)
	is.True(mate)
	is.Equal(moves, 1)
}

func TestSearchFindsLadderMateInTwo(t *testing.T) {
	is := is.New(t)
	// Two rooks ladder the cornered king: 1.Rb7 Kg8 2.Ra8#.
	w := newTestWorker(t, "7k/8/R7/1R6/8/8/8/6K1 w - - 0 1", NewTranspositionTable(1<<14))

	r := searchToDepth(w, 5)
	moves, mate := MateIn(r.Score)
	is.True(mate)
	is.Equal(moves, 2)
}

func TestShorterMateScoresHigher(t *testing.T) {
	is := is.New(t)
	// Mate in 1 must strictly outscore mate in 2.
	one := newTestWorker(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1", NewTranspositionTable(1<<14))
	two := newTestWorker(t, "7k/8/R7/1R6/8/8/8/6K1 w - - 0 1", NewTranspositionTable(1<<14))

	r1 := searchToDepth(one, 4)
	r2 := searchToDepth(two, 5)
	is.True(r1.Score > r2.Score)
}

func TestSearchPrefersHangingQueen(t *testing.T) {
	is := is.New(t)
	// A queen is en prise; any reasonable depth takes it.
	w := newTestWorker(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1", NewTranspositionTable(1<<14))

	r := searchToDepth(w, 4)
	is.Equal(r.Move.String(), "d2d5")
}

func TestStalemateScoresDraw(t *testing.T) {
	is := is.New(t)
	// Black to move is stalemated one ply down after Kc6; white must
	// still find a non-stalemating path, and a stalemate node itself
	// scores zero: search the stalemate position directly via a worker
	// whose side has no moves.
	w := newTestWorker(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", NewTranspositionTable(1<<14))
	r := searchToDepth(w, 3)
	is.Equal(r.Score, DrawScore)
	is.Equal(r.Move, board.NoMove)
}

func TestExcludedRootMovesSkipped(t *testing.T) {
	is := is.New(t)
	w := newTestWorker(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1", NewTranspositionTable(1<<14))

	takeQueen, err := w.pos.ParseMove("d2d5")
	is.NoErr(err)
	w.ExcludeRootMoves([]board.Move{takeQueen})

	r := searchToDepth(w, 3)
	is.True(r.Move != takeQueen)
	is.True(r.Move != board.NoMove)
}

func TestAllRootMovesExcludedFallsBack(t *testing.T) {
	is := is.New(t)
	w := newTestWorker(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1", NewTranspositionTable(1<<14))
	w.ExcludeRootMoves(w.pos.GenerateLegalMoves())

	r := searchToDepth(w, 3)
	is.True(r.Move != board.NoMove)
}

func TestStopFlagAbortsSearch(t *testing.T) {
	is := is.New(t)
	var stop atomic.Bool
	w := NewWorker(0, position(t, board.StartFEN), nil, NewTranspositionTable(1<<14), &stop)
	stop.Store(true)

	reported := 0
	w.Iterate(6, 6, func(SearchResult) { reported++ })
	is.Equal(reported, 0)
}

func TestDrawnPathDetection(t *testing.T) {
	is := is.New(t)
	w := newTestWorker(t, board.StartFEN, nil)

	// Shuffle knights back to the start: the position repeats on the
	// search path and must read as drawn.
	for _, s := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		m, err := w.pos.ParseMove(s)
		is.NoErr(err)
		_, ok := w.makeMove(m)
		is.True(ok)
	}
	is.True(w.isDrawn())

	// Fifty-move and insufficient-material draws too.
	fifty := newTestWorker(t, "4k3/8/8/8/8/8/8/4K2R w - - 100 80", nil)
	is.True(fifty.isDrawn())
	bare := newTestWorker(t, "8/8/4k3/8/8/3K4/8/8 w - - 0 1", nil)
	is.True(bare.isDrawn())
}

func TestWorkerSeedsGameHistory(t *testing.T) {
	is := is.New(t)
	// The root position already occurred once before in the game; one
	// more knight shuffle inside the search completes a repetition.
	pos := position(t, board.StartFEN)
	var stop atomic.Bool
	history := []uint64{pos.Hash, 111, 222, 333, pos.Hash}
	w := NewWorker(0, pos, history, NewTranspositionTable(1<<10), &stop)
	is.Equal(w.seen[pos.Hash], 2)
	is.True(w.isDrawn())
}

// bruteForce mirrors the search's shape, check extension and quiescence
// leaves included, but prunes nothing.
func bruteForce(w *Worker, depth, ply int) int {
	if ply >= MaxPly {
		return Evaluate(&w.pos)
	}
	if ply > 0 && w.isDrawn() {
		return DrawScore
	}
	if w.pos.InCheck() {
		depth++
	}
	if depth <= 0 {
		return w.quiescence(ply, -Infinity, Infinity)
	}

	var ml board.MoveList
	w.pos.GeneratePseudoLegal(&ml)
	best := -Infinity
	moved := false
	for _, m := range ml.Slice() {
		undo, ok := w.makeMove(m)
		if !ok {
			continue
		}
		moved = true
		if score := -bruteForce(w, depth-1, ply+1); score > best {
			best = score
		}
		w.unmakeMove(undo)
	}
	if !moved {
		if w.pos.InCheck() {
			return -MateScore + ply
		}
		return DrawScore
	}
	return best
}

func TestAlphaBetaMatchesBruteForce(t *testing.T) {
	defer func(nmp, lmr bool) { EnableNullMove, EnableLMR = nmp, lmr }(EnableNullMove, EnableLMR)
	EnableNullMove, EnableLMR = false, false

	fens := []string{
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		for depth := 1; depth <= 2; depth++ {
			// Pruned search and reference run table-less so neither
			// can feed the other.
			pruned := newTestWorker(t, fen, nil)
			var pv PVLine
			got := pruned.negamax(depth, 0, -Infinity, Infinity, &pv)

			ref := newTestWorker(t, fen, nil)
			want := bruteForce(ref, depth, 0)

			if got != want {
				t.Errorf("%s depth %d: alpha-beta %d, brute force %d", fen, depth, got, want)
			}
		}
	}
}

func TestTTDisabledFindsSameMate(t *testing.T) {
	is := is.New(t)

	with := newTestWorker(t, "7k/8/R7/1R6/8/8/8/6K1 w - - 0 1", NewTranspositionTable(1<<14))
	without := newTestWorker(t, "7k/8/R7/1R6/8/8/8/6K1 w - - 0 1", nil)

	r1 := searchToDepth(with, 5)
	r2 := searchToDepth(without, 5)
	is.Equal(r1.Score, r2.Score)
}
