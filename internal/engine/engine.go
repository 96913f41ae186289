package engine

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/chessmind/chessmind/internal/board"
	"github.com/chessmind/chessmind/internal/book"
	"github.com/chessmind/chessmind/internal/game"
	"github.com/chessmind/chessmind/internal/tablebase"
)

// ErrNoLegalMoves is returned when the side to move is mated or stalemated.
var ErrNoLegalMoves = errors.New("engine: no legal moves")

// Options configures an Engine.
type Options struct {
	// Threads is the number of search workers. 0 means one per CPU.
	Threads int
	// TTSize is the transposition table capacity in entries.
	TTSize int
	// Book enables opening book probes before searching.
	Book *book.Book
	// Tablebase adjudicates positions with few pieces, when set.
	Tablebase tablebase.Prober
	// Logger receives per-iteration search traces at debug level.
	Logger zerolog.Logger
}

// Engine searches for the best move in a game. One Engine can serve many
// sequential searches; the transposition table persists between them.
type Engine struct {
	threads int
	tt      *TranspositionTable
	book    *book.Book
	prober  tablebase.Prober
	log     zerolog.Logger
}

// New builds an engine from options, applying defaults for zero fields.
func New(opts Options) *Engine {
	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	size := opts.TTSize
	if size <= 0 {
		size = DefaultTTSize
	}
	return &Engine{
		threads: threads,
		tt:      NewTranspositionTable(size),
		book:    opts.Book,
		prober:  opts.Tablebase,
		log:     opts.Logger,
	}
}

// TT exposes the shared transposition table, mainly for statistics.
func (e *Engine) TT() *TranspositionTable { return e.tt }

// NewGame clears state carried across searches.
func (e *Engine) NewGame() { e.tt.Clear() }

// BestMove picks a move for the game's side to move: the opening book
// first, then the tablebase for small positions, then parallel
// iterative-deepening search within the given limits.
func (e *Engine) BestMove(ctx context.Context, g *game.Game, limits Limits) (SearchResult, error) {
	pos := g.Position()
	legal := pos.GenerateLegalMoves()
	if len(legal) == 0 {
		return SearchResult{}, ErrNoLegalMoves
	}

	if e.book != nil {
		if m, ok := e.book.Probe(g); ok {
			e.log.Debug().Stringer("move", m).Msg("book move")
			return SearchResult{Move: m, PV: []board.Move{m}, Complete: true}, nil
		}
	}

	if tablebase.Probeable(e.prober, pos) {
		if res, ok := e.probeRoot(ctx, pos, legal); ok {
			e.log.Debug().Stringer("move", res.Move).Int("score", res.Score).Msg("tablebase move")
			return res, nil
		}
	}

	return e.search(ctx, g, legal, limits)
}

// probeRoot adjudicates the root by probing every move's child position and
// keeping the best verdict for the mover. Any probe error abandons the
// tablebase and falls back to search.
func (e *Engine) probeRoot(ctx context.Context, pos *board.Position, legal []board.Move) (SearchResult, bool) {
	best := board.NoMove
	bestWDL := tablebase.Loss - 1
	bestDTZ := 0

	for _, m := range legal {
		child := *pos
		if _, ok := child.MakeMove(m); !ok {
			continue
		}
		res, err := e.prober.Probe(ctx, &child)
		if err != nil {
			e.log.Warn().Err(err).Msg("tablebase probe failed, falling back to search")
			return SearchResult{}, false
		}
		wdl := res.WDL.Negate()
		// Prefer the better verdict; among wins, the shorter conversion.
		if wdl > bestWDL || (wdl == bestWDL && wdl == tablebase.Win && res.DTZ < bestDTZ) {
			best, bestWDL, bestDTZ = m, wdl, res.DTZ
		}
	}
	if best == board.NoMove {
		return SearchResult{}, false
	}

	score := 0
	switch bestWDL {
	case tablebase.Win:
		score = MateScore / 2
	case tablebase.Loss:
		score = -MateScore / 2
	}
	return SearchResult{Move: best, Score: score, PV: []board.Move{best}, Complete: true}, true
}

// repetitionExclusions lists root moves that would let the opponent claim a
// threefold repetition. If every legal move repeats there is nothing to
// avoid, and no move is excluded.
func repetitionExclusions(g *game.Game, legal []board.Move) []board.Move {
	var excluded []board.Move
	for _, m := range legal {
		child := *g.Position()
		if _, ok := child.MakeMove(m); !ok {
			continue
		}
		if g.RepetitionCount(child.Hash) >= 2 {
			excluded = append(excluded, m)
		}
	}
	if len(excluded) == len(legal) {
		return nil
	}
	return excluded
}

// search runs the lazy-SMP loop: every worker iterates independently on its
// own position copy with staggered start depths, sharing only the
// transposition table and the stop flag. The deepest completed iteration
// wins; ties go to the higher score.
func (e *Engine) search(ctx context.Context, g *game.Game, legal []board.Move, limits Limits) (SearchResult, error) {
	start := time.Now()
	maxDepth := limits.depthLimit()
	excluded := repetitionExclusions(g, legal)

	if budget := limits.budget(g.Position().SideToMove); budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	var stop atomic.Bool
	stopWatch := context.AfterFunc(ctx, func() { stop.Store(true) })
	defer stopWatch()

	results := make(chan SearchResult, e.threads*MaxPly)
	var eg errgroup.Group
	var totalNodes atomic.Uint64

	for i := 0; i < e.threads; i++ {
		w := NewWorker(i, g.Position(), g.HashHistory(), e.tt, &stop)
		w.ExcludeRootMoves(excluded)
		firstDepth := 1 + i%2
		eg.Go(func() error {
			w.Iterate(firstDepth, maxDepth, func(r SearchResult) {
				results <- r
			})
			totalNodes.Add(w.Nodes())
			return nil
		})
	}
	go func() {
		eg.Wait()
		close(results)
	}()

	var best SearchResult
	for r := range results {
		if r.Move == board.NoMove {
			continue
		}
		if best.Move == board.NoMove || r.Depth > best.Depth ||
			(r.Depth == best.Depth && r.Score > best.Score) {
			best = r
			e.log.Debug().
				Int("depth", r.Depth).
				Int("score", r.Score).
				Uint64("nodes", r.Nodes).
				Stringer("pv", pvString(r.PV)).
				Dur("elapsed", time.Since(start)).
				Msg("iteration")
		}
		if r.Depth >= maxDepth {
			stop.Store(true)
		}
	}

	if best.Move == board.NoMove {
		// Stopped before depth 1 finished anywhere. Any legal move
		// beats forfeiting.
		best = SearchResult{Move: legal[0], PV: legal[:1]}
	}
	best.Nodes = totalNodes.Load()
	best.Complete = best.Depth >= maxDepth

	probes, hits := e.tt.HitRate()
	e.log.Info().
		Stringer("move", best.Move).
		Int("depth", best.Depth).
		Int("score", best.Score).
		Uint64("nodes", best.Nodes).
		Uint64("tt_probes", probes).
		Uint64("tt_hits", hits).
		Dur("elapsed", time.Since(start)).
		Msg("search finished")
	return best, nil
}

type pvString []board.Move

func (p pvString) String() string {
	s := ""
	for i, m := range p {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}
