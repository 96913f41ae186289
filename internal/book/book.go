// Package book implements a line-based opening book. A line is a sequence
// of coordinate moves from the starting position; when the game played so
// far is a proper prefix of a line, the line's next move is a candidate.
package book

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"lukechampine.com/frand"

	"github.com/chessmind/chessmind/internal/board"
	"github.com/chessmind/chessmind/internal/game"
)

// defaultLines covers a handful of sound classical openings, enough to
// keep the first moves out of the search.
var defaultLines = [][]string{
	// Italian Game
	{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "f8c5", "c2c3", "g8f6", "d2d3"},
	// Queen's Gambit Declined
	{"d2d4", "d7d5", "c2c4", "e7e6", "b1c3", "g8f6", "c1g5", "f8e7"},
	// Sicilian Najdorf
	{"e2e4", "c7c5", "g1f3", "d7d6", "d2d4", "c5d4", "f3d4", "g8f6", "b1c3", "a7a6"},
	// Symmetrical English
	{"c2c4", "e7e5", "b1c3", "g8f6", "g2g3", "d7d5", "c4d5", "f6d5", "f1g2", "d5b6", "g1f3"},
	// King's Indian Defence
	{"d2d4", "g8f6", "c2c4", "g7g6", "b1c3", "f8g7", "e2e4", "d7d6", "g1f3", "e8g8"},
	// French Defence
	{"e2e4", "e7e6", "d2d4", "d7d5", "b1c3", "g8f6", "c1g5", "f8e7"},
	// Caro-Kann
	{"e2e4", "c7c6", "d2d4", "d7d5", "b1c3", "d5e4", "c3e4", "c8f5", "e4g3", "f5g6"},
}

// Book holds opening lines and answers prefix queries against them.
type Book struct {
	lines [][]string
}

// Default returns the built-in book.
func Default() *Book {
	return &Book{lines: defaultLines}
}

// Load reads a book file: one line of space-separated coordinate moves per
// text line, '#' starting a comment. Lines with malformed moves are
// rejected.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b := &Book{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		moves := strings.Fields(text)
		if len(moves) == 0 {
			continue
		}
		for _, m := range moves {
			if len(m) < 4 || len(m) > 5 {
				return nil, fmt.Errorf("book %s:%d: malformed move %q", path, lineNo, m)
			}
		}
		b.lines = append(b.lines, moves)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

// Len returns the number of lines in the book.
func (b *Book) Len() int { return len(b.lines) }

// Probe returns a book continuation for the game, if any line still covers
// it. When several lines propose different continuations one is picked at
// random, which keeps repeated games from collapsing into a single opening.
// Candidates are validated against the position; an illegal book move is
// skipped, never returned.
func (b *Book) Probe(g *game.Game) (board.Move, bool) {
	played := g.Moves()

	var candidates []board.Move
	seen := map[board.Move]bool{}

line:
	for _, line := range b.lines {
		if len(played) >= len(line) {
			continue
		}
		for i, m := range played {
			if m.String() != line[i] {
				continue line
			}
		}
		m, err := g.Position().ParseMove(line[len(played)])
		if err != nil || seen[m] {
			continue
		}
		seen[m] = true
		candidates = append(candidates, m)
	}

	if len(candidates) == 0 {
		return board.NoMove, false
	}
	return candidates[frand.Intn(len(candidates))], true
}
