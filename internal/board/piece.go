package board

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opposite color.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// PieceType is a piece kind without color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var pieceTypeChars = [6]byte{'p', 'n', 'b', 'r', 'q', 'k'}

func (pt PieceType) String() string {
	if pt >= NoPieceType {
		return "-"
	}
	return string(pieceTypeChars[pt])
}

// Piece combines a color and a piece type.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// MakePiece builds a piece from a color and a type.
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(uint8(c)*6 + uint8(pt))
}

// Color returns the piece's color.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// Type returns the piece's kind.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Char returns the FEN letter for the piece, upper case for white.
func (p Piece) Char() byte {
	if p >= NoPiece {
		return '.'
	}
	ch := pieceTypeChars[p.Type()]
	if p.Color() == White {
		ch -= 'a' - 'A'
	}
	return ch
}

// PieceFromChar parses a FEN piece letter.
func PieceFromChar(ch byte) (Piece, bool) {
	color := Black
	if ch >= 'A' && ch <= 'Z' {
		color = White
		ch += 'a' - 'A'
	}
	for pt, c := range pieceTypeChars {
		if c == ch {
			return MakePiece(color, PieceType(pt)), true
		}
	}
	return NoPiece, false
}

func (p Piece) String() string {
	return string(p.Char())
}
