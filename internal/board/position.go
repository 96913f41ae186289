package board

import "strings"

// CastleRights is a bitmask of the four castling permissions.
type CastleRights uint8

const (
	CastleWhiteKing CastleRights = 1 << iota
	CastleWhiteQueen
	CastleBlackKing
	CastleBlackQueen
)

// castleRightsMask[sq] holds the rights that survive a move touching sq.
var castleRightsMask [64]CastleRights

func init() {
	for sq := range castleRightsMask {
		castleRightsMask[sq] = CastleWhiteKing | CastleWhiteQueen | CastleBlackKing | CastleBlackQueen
	}
	castleRightsMask[E1] &^= CastleWhiteKing | CastleWhiteQueen
	castleRightsMask[H1] &^= CastleWhiteKing
	castleRightsMask[A1] &^= CastleWhiteQueen
	castleRightsMask[E8] &^= CastleBlackKing | CastleBlackQueen
	castleRightsMask[H8] &^= CastleBlackKing
	castleRightsMask[A8] &^= CastleBlackQueen
}

// Position is a full chess position. It is a plain value: copying the struct
// copies the position.
type Position struct {
	Pieces     [12]Bitboard // occupancy per piece
	Occupied   [2]Bitboard  // occupancy per color
	All        Bitboard
	Board      [64]Piece // mailbox mirror of the bitboards
	SideToMove Color
	Castling   CastleRights
	EnPassant  Square // capture target square, or NoSquare
	HalfMove   int    // plies since last pawn move or capture
	FullMove   int
	Hash       uint64
}

// UndoInfo snapshots the position before a move so UnmakeMove can restore it
// exactly, side data included.
type UndoInfo struct {
	prev Position
}

// StartingPosition returns the standard initial position.
func StartingPosition() *Position {
	p, err := FromFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece { return p.Board[sq] }

// KingSquare returns the king square for the given color.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces[MakePiece(c, King)].LSB()
}

// PieceBB returns the occupancy of one piece kind for one color.
func (p *Position) PieceBB(c Color, pt PieceType) Bitboard {
	return p.Pieces[MakePiece(c, pt)]
}

func (p *Position) putPiece(pc Piece, sq Square) {
	bb := sq.Bitboard()
	p.Pieces[pc] |= bb
	p.Occupied[pc.Color()] |= bb
	p.All |= bb
	p.Board[sq] = pc
	p.Hash ^= zobristPieces[pc][sq]
}

func (p *Position) removePiece(pc Piece, sq Square) {
	bb := sq.Bitboard()
	p.Pieces[pc] &^= bb
	p.Occupied[pc.Color()] &^= bb
	p.All &^= bb
	p.Board[sq] = NoPiece
	p.Hash ^= zobristPieces[pc][sq]
}

// IsAttacked reports whether sq is attacked by any piece of color by.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	if PawnAttacks(by.Other(), sq)&p.PieceBB(by, Pawn) != 0 {
		return true
	}
	if KnightAttacks(sq)&p.PieceBB(by, Knight) != 0 {
		return true
	}
	if KingAttacks(sq)&p.PieceBB(by, King) != 0 {
		return true
	}
	diag := p.PieceBB(by, Bishop) | p.PieceBB(by, Queen)
	if diag != 0 && BishopAttacks(sq, p.All)&diag != 0 {
		return true
	}
	line := p.PieceBB(by, Rook) | p.PieceBB(by, Queen)
	return line != 0 && RookAttacks(sq, p.All)&line != 0
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.IsAttacked(p.KingSquare(p.SideToMove), p.SideToMove.Other())
}

// IsCapture reports whether m captures a piece in this position.
func (p *Position) IsCapture(m Move) bool {
	return p.Board[m.To()] != NoPiece || m.IsEnPassant()
}

// MakeMove applies a pseudo-legal move. If the move would leave the mover's
// king in check it is rejected: the position is left unchanged and ok is
// false. On success the returned UndoInfo restores the prior position.
func (p *Position) MakeMove(m Move) (undo UndoInfo, ok bool) {
	undo.prev = *p

	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	moving := p.Board[from]

	p.HalfMove++
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEPFile[p.EnPassant.File()]
		p.EnPassant = NoSquare
	}

	if captured := p.Board[to]; captured != NoPiece {
		p.removePiece(captured, to)
		p.HalfMove = 0
	}

	p.removePiece(moving, from)
	if m.IsPromotion() {
		p.putPiece(MakePiece(us, m.Promotion()), to)
	} else {
		p.putPiece(moving, to)
	}

	switch {
	case m.IsEnPassant():
		// The captured pawn sits behind the target square.
		p.removePiece(MakePiece(them, Pawn), to^8)
		p.HalfMove = 0
	case m.IsCastle():
		rook := MakePiece(us, Rook)
		switch to {
		case G1:
			p.removePiece(rook, H1)
			p.putPiece(rook, F1)
		case C1:
			p.removePiece(rook, A1)
			p.putPiece(rook, D1)
		case G8:
			p.removePiece(rook, H8)
			p.putPiece(rook, F8)
		case C8:
			p.removePiece(rook, A8)
			p.putPiece(rook, D8)
		}
	case moving.Type() == Pawn:
		p.HalfMove = 0
		if from^to == 16 {
			p.EnPassant = (from + to) / 2 // square the pawn skipped
			p.Hash ^= zobristEPFile[p.EnPassant.File()]
		}
	}

	if rights := p.Castling & castleRightsMask[from] & castleRightsMask[to]; rights != p.Castling {
		p.Hash ^= zobristCastling[p.Castling] ^ zobristCastling[rights]
		p.Castling = rights
	}

	if us == Black {
		p.FullMove++
	}
	p.SideToMove = them
	p.Hash ^= zobristSide

	if p.IsAttacked(p.KingSquare(us), them) {
		*p = undo.prev
		return undo, false
	}
	return undo, true
}

// UnmakeMove restores the position saved in undo.
func (p *Position) UnmakeMove(undo UndoInfo) {
	*p = undo.prev
}

// MakeNullMove passes the turn without moving. Used by null-move pruning.
func (p *Position) MakeNullMove() UndoInfo {
	undo := UndoInfo{prev: *p}
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEPFile[p.EnPassant.File()]
		p.EnPassant = NoSquare
	}
	p.HalfMove++
	p.SideToMove = p.SideToMove.Other()
	p.Hash ^= zobristSide
	return undo
}

// UnmakeNullMove restores the position saved by MakeNullMove.
func (p *Position) UnmakeNullMove(undo UndoInfo) {
	*p = undo.prev
}

// HasNonPawnMaterial reports whether the given side owns any piece besides
// pawns and the king. Null-move pruning is unsound without it.
func (p *Position) HasNonPawnMaterial(c Color) bool {
	return p.Occupied[c]&^(p.PieceBB(c, Pawn)|p.PieceBB(c, King)) != 0
}

// IsInsufficientMaterial reports draws by bare kings, king+minor vs king,
// and king+bishop vs king+bishop on same-colored squares.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[WhitePawn]|p.Pieces[BlackPawn] != 0 ||
		p.Pieces[WhiteRook]|p.Pieces[BlackRook] != 0 ||
		p.Pieces[WhiteQueen]|p.Pieces[BlackQueen] != 0 {
		return false
	}
	minors := p.Pieces[WhiteKnight] | p.Pieces[WhiteBishop] |
		p.Pieces[BlackKnight] | p.Pieces[BlackBishop]
	switch minors.Count() {
	case 0, 1:
		return true
	case 2:
		bishops := p.Pieces[WhiteBishop] | p.Pieces[BlackBishop]
		if bishops != minors || p.Pieces[WhiteBishop] == 0 || p.Pieces[BlackBishop] == 0 {
			return false
		}
		const lightSquares = Bitboard(0x55AA55AA55AA55AA)
		wLight := p.Pieces[WhiteBishop]&lightSquares != 0
		bLight := p.Pieces[BlackBishop]&lightSquares != 0
		return wLight == bLight
	}
	return false
}

// String renders the board with ranks 8 down to 1, for logs and debugging.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sb.WriteByte(p.Board[MakeSquare(file, rank)].Char())
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
