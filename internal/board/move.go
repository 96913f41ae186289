package board

// Move packs a move into 16 bits:
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-13 promotion piece (0=knight .. 3=queen), valid when flag is promotion
//	bits 14-15 flag
type Move uint16

// NoMove is the zero sentinel; it never encodes a real move.
const NoMove Move = 0

const (
	flagNormal    = 0
	flagPromotion = 1
	flagEnPassant = 2
	flagCastle    = 3
)

// NewMove builds a plain move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotionMove builds a promotion; promo must be Knight..Queen.
func NewPromotionMove(from, to Square, promo PieceType) Move {
	return NewMove(from, to) | Move(promo-Knight)<<12 | flagPromotion<<14
}

// NewEnPassantMove builds an en passant capture.
func NewEnPassantMove(from, to Square) Move {
	return NewMove(from, to) | flagEnPassant<<14
}

// NewCastleMove builds a castling move, encoded as the king's two-square hop.
func NewCastleMove(from, to Square) Move {
	return NewMove(from, to) | flagCastle<<14
}

// From returns the origin square.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square(m >> 6 & 0x3F) }

// Promotion returns the promotion piece type, or NoPieceType for
// non-promotions.
func (m Move) Promotion() PieceType {
	if !m.IsPromotion() {
		return NoPieceType
	}
	return PieceType(m>>12&3) + Knight
}

func (m Move) flag() uint16 { return uint16(m) >> 14 }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.flag() == flagPromotion }

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool { return m.flag() == flagEnPassant }

// IsCastle reports whether the move is castling.
func (m Move) IsCastle() bool { return m.flag() == flagCastle }

// String returns the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += m.Promotion().String()
	}
	return s
}

// MoveList is a stack-friendly move buffer sized for any legal position.
type MoveList struct {
	Moves [256]Move
	Count int
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.Moves[ml.Count] = m
	ml.Count++
}

// Slice returns the populated portion of the buffer.
func (ml *MoveList) Slice() []Move { return ml.Moves[:ml.Count] }

// Contains reports whether the list holds m.
func (ml *MoveList) Contains(m Move) bool {
	for _, x := range ml.Slice() {
		if x == m {
			return true
		}
	}
	return false
}
