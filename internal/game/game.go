// Package game tracks a chess game: the current position, the move history
// and the repetition bookkeeping the search needs to avoid and claim draws.
package game

import (
	"fmt"

	"github.com/chessmind/chessmind/internal/board"
)

// Status is the game state after the last played move.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	DrawByRepetition
	DrawByFiftyMoves
	DrawByInsufficientMaterial
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawByRepetition:
		return "draw by repetition"
	case DrawByFiftyMoves:
		return "draw by fifty-move rule"
	case DrawByInsufficientMaterial:
		return "draw by insufficient material"
	default:
		return "unknown"
	}
}

// Game couples a position with its history. Hash counts cover every position
// that has occurred, the current one included.
type Game struct {
	pos    board.Position
	moves  []board.Move
	hashes []uint64
	counts map[uint64]int
}

// New starts a game from the standard initial position.
func New() *Game {
	g, err := FromFEN(board.StartFEN)
	if err != nil {
		panic(err)
	}
	return g
}

// FromFEN starts a game from an arbitrary position.
func FromFEN(fen string) (*Game, error) {
	pos, err := board.FromFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{
		pos:    *pos,
		hashes: []uint64{pos.Hash},
		counts: map[uint64]int{pos.Hash: 1},
	}
	return g, nil
}

// Position returns the current position. The pointer stays valid only until
// the next PlayMove; copy the struct to keep a snapshot.
func (g *Game) Position() *board.Position { return &g.pos }

// PlayMove applies a legal move and records it.
func (g *Game) PlayMove(m board.Move) error {
	legal := g.pos.GenerateLegalMoves()
	found := false
	for _, lm := range legal {
		if lm == m {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("illegal move %s", m)
	}
	if _, ok := g.pos.MakeMove(m); !ok {
		return fmt.Errorf("illegal move %s", m)
	}
	g.moves = append(g.moves, m)
	g.hashes = append(g.hashes, g.pos.Hash)
	g.counts[g.pos.Hash]++
	return nil
}

// PlayMoveStr applies a move in coordinate notation.
func (g *Game) PlayMoveStr(s string) error {
	m, err := g.pos.ParseMove(s)
	if err != nil {
		return err
	}
	return g.PlayMove(m)
}

// Moves returns the played moves in order.
func (g *Game) Moves() []board.Move { return g.moves }

// Ply returns the number of half-moves played.
func (g *Game) Ply() int { return len(g.moves) }

// RepetitionCount returns how often the given position hash has occurred in
// the game so far.
func (g *Game) RepetitionCount(hash uint64) int { return g.counts[hash] }

// HashHistory returns the hashes of every position seen, oldest first.
// Search workers seed their path-repetition table from it.
func (g *Game) HashHistory() []uint64 { return g.hashes }

// Status classifies the current position. Repetition and fifty-move draws
// are reported as soon as they hold; no claim step is modeled.
func (g *Game) Status() Status {
	if !g.pos.HasLegalMoves() {
		if g.pos.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if g.counts[g.pos.Hash] >= 3 {
		return DrawByRepetition
	}
	if g.pos.HalfMove >= 100 {
		return DrawByFiftyMoves
	}
	if g.pos.IsInsufficientMaterial() {
		return DrawByInsufficientMaterial
	}
	return Ongoing
}

// Winner returns the winning color when Status is Checkmate.
func (g *Game) Winner() (board.Color, bool) {
	if g.Status() != Checkmate {
		return board.NoColor, false
	}
	return g.pos.SideToMove.Other(), true
}
