package board

import "fmt"

// Move generation is pseudo-legal: generated moves obey piece movement and
// castling transit rules, but may leave the mover's king in check. MakeMove
// rejects those, and GenerateLegalMoves filters through it.

func (p *Position) pawnMoves(ml *MoveList, capturesOnly bool) {
	us := p.SideToMove
	them := us.Other()
	pawns := p.PieceBB(us, Pawn)

	up := 8
	startRank, promoRank := 1, 7
	if us == Black {
		up = -8
		startRank, promoRank = 6, 0
	}

	addPawnMove := func(from, to Square) {
		if to.Rank() == promoRank {
			for pt := Queen; pt >= Knight; pt-- {
				ml.Add(NewPromotionMove(from, to, pt))
			}
		} else {
			ml.Add(NewMove(from, to))
		}
	}

	for pawns != 0 {
		from := pawns.PopLSB()

		targets := PawnAttacks(us, from) & p.Occupied[them]
		for targets != 0 {
			addPawnMove(from, targets.PopLSB())
		}
		if p.EnPassant != NoSquare && PawnAttacks(us, from).Has(p.EnPassant) {
			ml.Add(NewEnPassantMove(from, p.EnPassant))
		}

		one := Square(int(from) + up)
		if p.All.Has(one) {
			continue
		}
		if !capturesOnly || one.Rank() == promoRank {
			addPawnMove(from, one)
		}
		if !capturesOnly && from.Rank() == startRank {
			if two := Square(int(one) + up); !p.All.Has(two) {
				ml.Add(NewMove(from, two))
			}
		}
	}
}

func (p *Position) pieceMoves(ml *MoveList, targets Bitboard) {
	us := p.SideToMove

	for pt := Knight; pt <= King; pt++ {
		pieces := p.PieceBB(us, pt)
		for pieces != 0 {
			from := pieces.PopLSB()
			var attacks Bitboard
			switch pt {
			case Knight:
				attacks = KnightAttacks(from)
			case Bishop:
				attacks = BishopAttacks(from, p.All)
			case Rook:
				attacks = RookAttacks(from, p.All)
			case Queen:
				attacks = QueenAttacks(from, p.All)
			case King:
				attacks = KingAttacks(from)
			}
			attacks &= targets
			for attacks != 0 {
				ml.Add(NewMove(from, attacks.PopLSB()))
			}
		}
	}
}

func (p *Position) castleMoves(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()

	type castle struct {
		right          CastleRights
		from, to       Square
		empty          Bitboard
		transit        Square
	}
	var candidates [2]castle
	if us == White {
		candidates = [2]castle{
			{CastleWhiteKing, E1, G1, F1.Bitboard() | G1.Bitboard(), F1},
			{CastleWhiteQueen, E1, C1, B1.Bitboard() | C1.Bitboard() | D1.Bitboard(), D1},
		}
	} else {
		candidates = [2]castle{
			{CastleBlackKing, E8, G8, F8.Bitboard() | G8.Bitboard(), F8},
			{CastleBlackQueen, E8, C8, B8.Bitboard() | C8.Bitboard() | D8.Bitboard(), D8},
		}
	}

	for _, c := range candidates {
		if p.Castling&c.right == 0 || p.All&c.empty != 0 {
			continue
		}
		// The king may not castle out of or through check. Landing in
		// check is caught by MakeMove like any other move.
		if p.IsAttacked(c.from, them) || p.IsAttacked(c.transit, them) {
			continue
		}
		ml.Add(NewCastleMove(c.from, c.to))
	}
}

// GeneratePseudoLegal fills ml with all pseudo-legal moves for the side to
// move.
func (p *Position) GeneratePseudoLegal(ml *MoveList) {
	ml.Count = 0
	p.pawnMoves(ml, false)
	p.pieceMoves(ml, ^p.Occupied[p.SideToMove])
	p.castleMoves(ml)
}

// GenerateCaptures fills ml with pseudo-legal captures and promotions, the
// move set quiescence search explores.
func (p *Position) GenerateCaptures(ml *MoveList) {
	ml.Count = 0
	p.pawnMoves(ml, true)
	p.pieceMoves(ml, p.Occupied[p.SideToMove.Other()])
}

// GenerateLegalMoves returns every strictly legal move.
func (p *Position) GenerateLegalMoves() []Move {
	var ml MoveList
	p.GeneratePseudoLegal(&ml)
	legal := make([]Move, 0, ml.Count)
	for _, m := range ml.Slice() {
		if undo, ok := p.MakeMove(m); ok {
			p.UnmakeMove(undo)
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMoves reports whether the side to move has at least one legal
// move. False means checkmate or stalemate.
func (p *Position) HasLegalMoves() bool {
	var ml MoveList
	p.GeneratePseudoLegal(&ml)
	for _, m := range ml.Slice() {
		if undo, ok := p.MakeMove(m); ok {
			p.UnmakeMove(undo)
			return true
		}
	}
	return false
}

// ParseMove parses coordinate notation ("e2e4", "e7e8q") against the legal
// moves of this position.
func (p *Position) ParseMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	promo := NoPieceType
	if len(s) == 5 {
		pc, ok := PieceFromChar(s[4])
		if !ok || pc.Type() == Pawn || pc.Type() == King {
			return NoMove, fmt.Errorf("invalid promotion in %q", s)
		}
		promo = pc.Type()
	}
	for _, m := range p.GenerateLegalMoves() {
		if m.From() == from && m.To() == to && m.Promotion() == promo {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("illegal move %q", s)
}

// Perft counts leaf nodes of the legal move tree to the given depth.
func (p *Position) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var ml MoveList
	p.GeneratePseudoLegal(&ml)
	var nodes uint64
	for _, m := range ml.Slice() {
		undo, ok := p.MakeMove(m)
		if !ok {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += p.Perft(depth - 1)
		}
		p.UnmakeMove(undo)
	}
	return nodes
}
