package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN parses a FEN string into a position.
func FromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen %q: want at least 4 fields, got %d", fen, len(fields))
	}

	p := &Position{EnPassant: NoSquare, FullMove: 1}
	for i := range p.Board {
		p.Board[i] = NoPiece
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen %q: want 8 ranks, got %d", fen, len(ranks))
	}
	for r, rankStr := range ranks {
		rank := 7 - r
		file := 0
		for i := 0; i < len(rankStr); i++ {
			ch := rankStr[i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc, ok := PieceFromChar(ch)
			if !ok || file > 7 {
				return nil, fmt.Errorf("fen %q: bad rank %q", fen, rankStr)
			}
			sq := MakeSquare(file, rank)
			bb := sq.Bitboard()
			p.Pieces[pc] |= bb
			p.Occupied[pc.Color()] |= bb
			p.All |= bb
			p.Board[sq] = pc
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("fen %q: rank %q covers %d files", fen, rankStr, file)
		}
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fmt.Errorf("fen %q: bad side %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.Castling |= CastleWhiteKing
			case 'Q':
				p.Castling |= CastleWhiteQueen
			case 'k':
				p.Castling |= CastleBlackKing
			case 'q':
				p.Castling |= CastleBlackQueen
			default:
				return nil, fmt.Errorf("fen %q: bad castling %q", fen, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("fen %q: %w", fen, err)
		}
		p.EnPassant = sq
	}

	if len(fields) > 4 {
		hm, err := strconv.Atoi(fields[4])
		if err != nil || hm < 0 {
			return nil, fmt.Errorf("fen %q: bad halfmove clock %q", fen, fields[4])
		}
		p.HalfMove = hm
	}
	if len(fields) > 5 {
		fm, err := strconv.Atoi(fields[5])
		if err != nil || fm < 1 {
			return nil, fmt.Errorf("fen %q: bad fullmove number %q", fen, fields[5])
		}
		p.FullMove = fm
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("fen %q: %w", fen, err)
	}

	p.Hash = p.ComputeHash()
	return p, nil
}

// Validate rejects positions that break the data model: wrong king counts,
// more pieces or pawns than one side can have, pawns on a back rank, or the
// side not to move left in check. Such positions must never reach move
// generation; the king-capture lines they open up corrupt the board.
func (p *Position) Validate() error {
	for _, c := range [2]Color{White, Black} {
		if n := p.PieceBB(c, King).Count(); n != 1 {
			return fmt.Errorf("position: %v has %d kings", c, n)
		}
		if n := p.PieceBB(c, Pawn).Count(); n > 8 {
			return fmt.Errorf("position: %v has %d pawns", c, n)
		}
		if n := p.Occupied[c].Count(); n > 16 {
			return fmt.Errorf("position: %v has %d pieces", c, n)
		}
	}
	if pawns := p.Pieces[WhitePawn] | p.Pieces[BlackPawn]; pawns&(Rank1|Rank8) != 0 {
		return fmt.Errorf("position: pawn on a back rank")
	}
	mover := p.SideToMove
	if p.IsAttacked(p.KingSquare(mover.Other()), mover) {
		return fmt.Errorf("position: %v is in check but %v is to move", mover.Other(), mover)
	}
	return nil
}

// FEN serializes the position.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.Board[MakeSquare(file, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.Castling == 0 {
		sb.WriteByte('-')
	} else {
		for _, cr := range []struct {
			right CastleRights
			ch    byte
		}{{CastleWhiteKing, 'K'}, {CastleWhiteQueen, 'Q'}, {CastleBlackKing, 'k'}, {CastleBlackQueen, 'q'}} {
			if p.Castling&cr.right != 0 {
				sb.WriteByte(cr.ch)
			}
		}
	}

	sb.WriteByte(' ')
	if p.EnPassant == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.EnPassant.String())
	}

	fmt.Fprintf(&sb, " %d %d", p.HalfMove, p.FullMove)
	return sb.String()
}
