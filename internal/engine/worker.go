package engine

import (
	"sync/atomic"

	"github.com/chessmind/chessmind/internal/board"
)

const stopCheckInterval = 2048

// Worker runs iterative-deepening alpha-beta on a private copy of the root
// position. Workers share only the transposition table and the stop flag;
// killers, history and the repetition table are thread-local.
type Worker struct {
	id      int
	pos     board.Position
	orderer *MoveOrderer
	tt      *TranspositionTable
	stop    *atomic.Bool

	// seen counts position occurrences on the path from the game start
	// through the current search line.
	seen map[uint64]int

	excludedRoot []board.Move

	nodes   uint64
	aborted bool
}

// NewWorker builds a worker for one search thread. history carries the
// hashes of every position the game has visited so repetitions across the
// root are detected.
func NewWorker(id int, pos *board.Position, history []uint64, tt *TranspositionTable, stop *atomic.Bool) *Worker {
	w := &Worker{
		id:      id,
		pos:     *pos,
		orderer: NewMoveOrderer(),
		tt:      tt,
		stop:    stop,
		seen:    make(map[uint64]int, len(history)),
	}
	for _, h := range history {
		w.seen[h]++
	}
	if w.seen[pos.Hash] == 0 {
		w.seen[pos.Hash] = 1
	}
	return w
}

// ExcludeRootMoves removes moves from consideration at the root. Used to
// steer away from moves that would allow a draw claim.
func (w *Worker) ExcludeRootMoves(moves []board.Move) {
	w.excludedRoot = moves
}

// Nodes returns the node count of the current search.
func (w *Worker) Nodes() uint64 { return w.nodes }

func (w *Worker) excluded(m board.Move) bool {
	for _, x := range w.excludedRoot {
		if x == m {
			return true
		}
	}
	return false
}

func (w *Worker) checkStop() bool {
	if w.nodes%stopCheckInterval == 0 && w.stop.Load() {
		w.aborted = true
	}
	return w.aborted
}

// A worker can run without a transposition table; the engine always passes
// one, but comparison tests search bare.

func (w *Worker) ttProbe() (TTEntry, bool) {
	if w.tt == nil {
		return TTEntry{}, false
	}
	return w.tt.Probe(w.pos.Hash)
}

func (w *Worker) ttStore(m board.Move, score, depth int, bound Bound) {
	if w.tt != nil {
		w.tt.Store(w.pos.Hash, m, score, depth, bound)
	}
}

func (w *Worker) makeMove(m board.Move) (board.UndoInfo, bool) {
	undo, ok := w.pos.MakeMove(m)
	if ok {
		w.seen[w.pos.Hash]++
	}
	return undo, ok
}

func (w *Worker) unmakeMove(undo board.UndoInfo) {
	w.seen[w.pos.Hash]--
	w.pos.UnmakeMove(undo)
}

// isDrawn reports path repetitions, the fifty-move rule and dead material.
// A single prior occurrence counts as a repetition inside the tree: if the
// opponent can force the position again, a third occurrence follows anyway.
func (w *Worker) isDrawn() bool {
	return w.seen[w.pos.Hash] >= 2 ||
		w.pos.HalfMove >= 100 ||
		w.pos.IsInsufficientMaterial()
}

// aspirationWindow is the half-width of the root window once a previous
// iteration's score is available.
const aspirationWindow = 50

// minAspirationDepth is the first depth that searches with a narrowed root
// window instead of the full one.
const minAspirationDepth = 5

// SearchResult is one completed root iteration.
type SearchResult struct {
	Move  board.Move
	Score int
	Depth int
	Nodes uint64
	PV    []board.Move
	// Complete is false when the search was cut short of its requested
	// depth by the time budget or cancellation.
	Complete bool
}

// Iterate runs iterative deepening from firstDepth to maxDepth, invoking
// report after every completed iteration. It returns early when the shared
// stop flag is raised; incomplete iterations are never reported.
func (w *Worker) Iterate(firstDepth, maxDepth int, report func(SearchResult)) {
	score := 0
	for depth := firstDepth; depth <= maxDepth; depth++ {
		var pv PVLine

		alpha, beta := -Infinity, Infinity
		if depth >= minAspirationDepth {
			alpha, beta = score-aspirationWindow, score+aspirationWindow
		}
		s := w.negamax(depth, 0, alpha, beta, &pv)
		if !w.aborted && (s <= alpha || s >= beta) {
			s = w.negamax(depth, 0, -Infinity, Infinity, &pv)
		}
		if !w.aborted && s == -Infinity && len(w.excludedRoot) > 0 {
			// Every root move was excluded; allow them after all.
			w.excludedRoot = nil
			s = w.negamax(depth, 0, -Infinity, Infinity, &pv)
		}
		if w.aborted {
			return
		}
		score = s

		line := append([]board.Move(nil), pv.Moves()...)
		var best board.Move
		if len(line) > 0 {
			best = line[0]
		}
		report(SearchResult{Move: best, Score: s, Depth: depth, Nodes: w.nodes, PV: line})
	}
}

func (w *Worker) negamax(depth, ply, alpha, beta int, pv *PVLine) int {
	pv.Clear()

	w.nodes++
	if w.checkStop() {
		return 0
	}
	if ply >= MaxPly {
		return Evaluate(&w.pos)
	}
	if ply > 0 && w.isDrawn() {
		return DrawScore
	}

	// Mate distance pruning: even the fastest possible mate from here
	// cannot beat a shorter mate already found.
	if ply > 0 {
		if mateAlpha := -MateScore + ply; mateAlpha > alpha {
			alpha = mateAlpha
		}
		if mateBeta := MateScore - ply; mateBeta < beta {
			beta = mateBeta
		}
		if alpha >= beta {
			return alpha
		}
	}

	inCheck := w.pos.InCheck()
	if inCheck {
		depth++ // check extension
	}

	if depth <= 0 {
		return w.quiescence(ply, alpha, beta)
	}

	isPV := beta-alpha > 1

	ttMove := board.NoMove
	if entry, ok := w.ttProbe(); ok {
		ttMove = entry.Move
		if !isPV && ply > 0 && int(entry.Depth) >= depth {
			score := scoreFromTT(int(entry.Score), ply)
			switch entry.Bound {
			case BoundExact:
				return score
			case BoundLower:
				if score >= beta {
					return score
				}
			case BoundUpper:
				if score <= alpha {
					return score
				}
			}
		}
	}

	if EnableNullMove && !isPV && !inCheck && ply > 0 && depth >= 3 &&
		w.pos.HasNonPawnMaterial(w.pos.SideToMove) {
		undo := w.pos.MakeNullMove()
		w.seen[w.pos.Hash]++
		var childPV PVLine
		score := -w.negamax(depth-3, ply+1, -beta, -beta+1, &childPV)
		w.seen[w.pos.Hash]--
		w.pos.UnmakeNullMove(undo)
		if w.aborted {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	var ml board.MoveList
	w.pos.GeneratePseudoLegal(&ml)
	var scores [256]int
	w.orderer.ScoreMoves(&w.pos, &ml, scores[:ml.Count], ply, ttMove)

	var (
		bestScore = -Infinity
		bestMove  = board.NoMove
		bound     = BoundUpper
		moveCount int
		childPV   PVLine
	)

	for i := 0; i < ml.Count; i++ {
		m := PickMove(&ml, scores[:ml.Count], i)
		if ply == 0 && w.excluded(m) {
			continue
		}
		isQuiet := !w.pos.IsCapture(m) && !m.IsPromotion()
		undo, ok := w.makeMove(m)
		if !ok {
			continue
		}
		moveCount++

		var score int
		switch {
		case moveCount == 1:
			score = -w.negamax(depth-1, ply+1, -beta, -alpha, &childPV)
		default:
			// Late move reductions: quiet moves far down the list
			// rarely matter; try them shallower first.
			reduced := depth - 1
			if EnableLMR && isQuiet && !inCheck && moveCount > 3 && depth > 2 {
				reduced = depth - 2
			}
			score = -w.negamax(reduced, ply+1, -alpha-1, -alpha, &childPV)
			if score > alpha && (reduced < depth-1 || score < beta) {
				score = -w.negamax(depth-1, ply+1, -beta, -alpha, &childPV)
			}
		}

		w.unmakeMove(undo)
		if w.aborted {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			bound = BoundExact
			pv.Set(m, &childPV)
		}
		if alpha >= beta {
			if isQuiet {
				w.orderer.RecordKiller(ply, m)
				w.orderer.RecordHistory(m, depth)
			}
			w.ttStore(m, scoreToTT(bestScore, ply), depth, BoundLower)
			return bestScore
		}
	}

	if moveCount == 0 {
		if ply == 0 && len(w.excludedRoot) > 0 {
			// Every root move was excluded as repetition bait; the
			// caller falls back to allowing them.
			return -Infinity
		}
		if inCheck {
			return -MateScore + ply
		}
		return DrawScore
	}

	w.ttStore(bestMove, scoreToTT(bestScore, ply), depth, bound)
	return bestScore
}

// quiescence searches captures and promotions until the position is calm,
// so the static evaluation is never taken in the middle of an exchange.
func (w *Worker) quiescence(ply, alpha, beta int) int {
	w.nodes++
	if w.checkStop() {
		return 0
	}
	if ply >= MaxPly {
		return Evaluate(&w.pos)
	}

	standPat := Evaluate(&w.pos)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	var ml board.MoveList
	w.pos.GenerateCaptures(&ml)
	var scores [256]int
	w.orderer.ScoreMoves(&w.pos, &ml, scores[:ml.Count], ply, board.NoMove)

	best := standPat
	for i := 0; i < ml.Count; i++ {
		m := PickMove(&ml, scores[:ml.Count], i)
		undo, ok := w.makeMove(m)
		if !ok {
			continue
		}
		score := -w.quiescence(ply+1, -beta, -alpha)
		w.unmakeMove(undo)
		if w.aborted {
			return 0
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
