package board

// Zobrist keys. Generated deterministically with an xorshift64* stream so
// hashes are stable across runs and processes.

var (
	zobristPieces   [12][64]uint64
	zobristCastling [16]uint64
	zobristEPFile   [8]uint64

	zobristSide uint64 = 0x9d39247e33776d41
)

func init() {
	seed := uint64(0xcbf29ce484222325)
	next := func() uint64 {
		seed ^= seed >> 12
		seed ^= seed << 25
		seed ^= seed >> 27
		seed *= 0x2545F4914F6CDD1D
		return seed
	}
	for p := range zobristPieces {
		for s := range zobristPieces[p] {
			zobristPieces[p][s] = next()
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = next()
	}
	for i := range zobristEPFile {
		zobristEPFile[i] = next()
	}
}

// ComputeHash derives the position hash from scratch. MakeMove maintains the
// hash incrementally; this is the reference for tests and FEN loading.
func (p *Position) ComputeHash() uint64 {
	var h uint64
	for pc := WhitePawn; pc < NoPiece; pc++ {
		bb := p.Pieces[pc]
		for bb != 0 {
			h ^= zobristPieces[pc][bb.PopLSB()]
		}
	}
	h ^= zobristCastling[p.Castling]
	if p.EnPassant != NoSquare {
		h ^= zobristEPFile[p.EnPassant.File()]
	}
	if p.SideToMove == White {
		h ^= zobristSide
	}
	return h
}
