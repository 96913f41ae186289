package board

// Attack tables. Leapers (knight, king, pawn) are fully precomputed; sliders
// combine precomputed empty-board rays with a blocker cut per direction.

type direction uint8

const (
	north direction = iota
	northEast
	east
	southEast
	south
	southWest
	west
	northWest
)

var (
	rayAttacks    [8][64]Bitboard
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard
)

var dirDeltas = [8][2]int{
	north:     {0, 1},
	northEast: {1, 1},
	east:      {1, 0},
	southEast: {1, -1},
	south:     {0, -1},
	southWest: {-1, -1},
	west:      {-1, 0},
	northWest: {-1, 1},
}

func init() {
	for sq := A1; sq <= H8; sq++ {
		f, r := sq.File(), sq.Rank()

		for dir, d := range dirDeltas {
			for tf, tr := f+d[0], r+d[1]; tf >= 0 && tf < 8 && tr >= 0 && tr < 8; tf, tr = tf+d[0], tr+d[1] {
				rayAttacks[dir][sq] |= MakeSquare(tf, tr).Bitboard()
			}
		}

		for _, d := range [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}} {
			if tf, tr := f+d[0], r+d[1]; tf >= 0 && tf < 8 && tr >= 0 && tr < 8 {
				knightAttacks[sq] |= MakeSquare(tf, tr).Bitboard()
			}
		}

		for _, d := range dirDeltas {
			if tf, tr := f+d[0], r+d[1]; tf >= 0 && tf < 8 && tr >= 0 && tr < 8 {
				kingAttacks[sq] |= MakeSquare(tf, tr).Bitboard()
			}
		}

		bb := sq.Bitboard()
		pawnAttacks[White][sq] = (bb &^ FileA) << 7 | (bb &^ FileH) << 9
		pawnAttacks[Black][sq] = (bb &^ FileA) >> 9 | (bb &^ FileH) >> 7
	}
}

// rayAttack returns the attack set along one direction from sq, stopping at
// (and including) the first occupied square.
func rayAttack(dir direction, sq Square, occ Bitboard) Bitboard {
	attacks := rayAttacks[dir][sq]
	blockers := attacks & occ
	if blockers == 0 {
		return attacks
	}
	var first Square
	// Northward rays grow toward higher bits, so the nearest blocker is
	// the lowest set bit; southward rays are the reverse.
	if dir <= east || dir == northWest {
		first = blockers.LSB()
	} else {
		first = blockers.MSB()
	}
	return attacks &^ rayAttacks[dir][first]
}

// RookAttacks returns rook attacks from sq given board occupancy.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	return rayAttack(north, sq, occ) | rayAttack(south, sq, occ) |
		rayAttack(east, sq, occ) | rayAttack(west, sq, occ)
}

// BishopAttacks returns bishop attacks from sq given board occupancy.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	return rayAttack(northEast, sq, occ) | rayAttack(southEast, sq, occ) |
		rayAttack(southWest, sq, occ) | rayAttack(northWest, sq, occ)
}

// QueenAttacks returns queen attacks from sq given board occupancy.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// KnightAttacks returns knight attacks from sq.
func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }

// KingAttacks returns king attacks from sq.
func KingAttacks(sq Square) Bitboard { return kingAttacks[sq] }

// PawnAttacks returns the squares a pawn of the given color attacks from sq.
func PawnAttacks(c Color, sq Square) Bitboard { return pawnAttacks[c][sq] }
