// Package board implements a bitboard chess position with full make/unmake
// move support, legal move generation and Zobrist hashing.
package board

import "fmt"

// Square indexes a board square 0-63 using little-endian rank-file
// mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// MakeSquare builds a square from file (0=a) and rank (0=1).
func MakeSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the square's file, 0-7 for a-h.
func (s Square) File() int { return int(s & 7) }

// Rank returns the square's rank, 0-7 for 1-8.
func (s Square) Rank() int { return int(s >> 3) }

// Flip mirrors the square vertically (A1 <-> A8).
func (s Square) Flip() Square { return s ^ 56 }

// IsValid reports whether the square is on the board.
func (s Square) IsValid() bool { return s < 64 }

// Bitboard returns a bitboard with only this square set.
func (s Square) Bitboard() Bitboard { return 1 << s }

// String returns the square in coordinate notation, e.g. "e4".
func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+s.File(), '1'+s.Rank())
}

// ParseSquare parses coordinate notation like "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return MakeSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}
