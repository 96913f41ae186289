// Command searchbench searches a position from the command line and prints
// what the engine found. It doubles as a quick perft runner.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chessmind/chessmind/internal/board"
	"github.com/chessmind/chessmind/internal/book"
	"github.com/chessmind/chessmind/internal/config"
	"github.com/chessmind/chessmind/internal/engine"
	"github.com/chessmind/chessmind/internal/game"
	"github.com/chessmind/chessmind/internal/tablebase"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "config file path")
		fen      = flag.String("fen", board.StartFEN, "position to search")
		moves    = flag.String("moves", "", "moves already played from the position, e.g. \"e2e4 e7e5\"")
		depth    = flag.Int("depth", 0, "search depth (overrides config)")
		threads  = flag.Int("threads", 0, "worker count (overrides config)")
		moveTime = flag.Duration("movetime", 0, "time budget per move (overrides config)")
		perft    = flag.Int("perft", 0, "run perft to this depth instead of searching")
		noBook   = flag.Bool("no-book", false, "disable the opening book")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	g, err := game.FromFEN(*fen)
	if err != nil {
		logger.Fatal().Err(err).Msg("parsing position")
	}
	for _, s := range strings.Fields(*moves) {
		if err := g.PlayMoveStr(s); err != nil {
			logger.Fatal().Err(err).Str("move", s).Msg("playing move")
		}
	}

	if *perft > 0 {
		runPerft(logger, g.Position(), *perft)
		return
	}

	if *depth > 0 {
		cfg.Depth = *depth
	}
	if *threads > 0 {
		cfg.Threads = *threads
	}
	if *moveTime > 0 {
		cfg.MoveTime = *moveTime
	}

	opts := engine.Options{
		Threads: cfg.Threads,
		TTSize:  cfg.TTSize,
		Logger:  logger,
	}
	if cfg.TablebaseCacheDir != "" {
		tb, err := tablebase.OpenPersistentCache(cfg.TablebaseCacheDir, nil)
		if err != nil {
			logger.Fatal().Err(err).Msg("opening tablebase cache")
		}
		defer tb.Close()
		opts.Tablebase = tb
	}
	if cfg.BookEnabled && !*noBook {
		if cfg.BookPath != "" {
			b, err := book.Load(cfg.BookPath)
			if err != nil {
				logger.Fatal().Err(err).Msg("loading book")
			}
			opts.Book = b
		} else {
			opts.Book = book.Default()
		}
	}

	e := engine.New(opts)
	limits := engine.Limits{Depth: cfg.Depth, MoveTime: cfg.MoveTime}

	start := time.Now()
	result, err := e.BestMove(context.Background(), g, limits)
	if err != nil {
		logger.Fatal().Err(err).Msg("search failed")
	}
	elapsed := time.Since(start)

	nps := float64(result.Nodes) / elapsed.Seconds()
	fmt.Printf("bestmove %s\n", result.Move)
	fmt.Printf("depth    %d\n", result.Depth)
	if mate, ok := engine.MateIn(result.Score); ok {
		fmt.Printf("score    mate %d\n", mate)
	} else {
		fmt.Printf("score    %d cp\n", result.Score)
	}
	fmt.Printf("nodes    %d (%.0f nps)\n", result.Nodes, nps)
	fmt.Printf("pv       %s\n", pvString(result.PV))
}

func runPerft(logger zerolog.Logger, pos *board.Position, depth int) {
	for d := 1; d <= depth; d++ {
		start := time.Now()
		nodes := pos.Perft(d)
		elapsed := time.Since(start)
		logger.Info().
			Int("depth", d).
			Uint64("nodes", nodes).
			Dur("elapsed", elapsed).
			Float64("nps", float64(nodes)/elapsed.Seconds()).
			Msg("perft")
	}
}

func pvString(pv []board.Move) string {
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
