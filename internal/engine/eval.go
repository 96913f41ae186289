package engine

import "github.com/chessmind/chessmind/internal/board"

// Static evaluation: tapered material and piece-square scores blended by
// game phase, plus a small center-occupation term. Scores are centipawns
// from the side to move's point of view.

var materialMG = [6]int{100, 320, 330, 500, 900, 0}
var materialEG = [6]int{120, 300, 320, 550, 1000, 0}

// phaseWeights drains the phase as pieces come off the board.
var phaseWeights = [6]int{0, 1, 1, 2, 4, 0}

const totalPhase = 24

const centerBonusMG = 10

// Piece-square tables from white's perspective, A1 first. Black mirrors
// through Square.Flip.
var pstMG = [6][64]int{
	{ // pawn
		0, 0, 0, 0, 0, 0, 0, 0,
		-10, 5, -5, -10, -10, -5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-5, 0, 10, 25, 25, 10, 0, -5,
		5, 5, 15, 30, 30, 15, 5, 5,
		15, 15, 25, 35, 35, 25, 15, 15,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // knight
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 5, 20, 25, 25, 20, 5, -30,
		-30, 5, 20, 25, 25, 20, 5, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	{ // bishop
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 15, 15, 15, 15, 0, -10,
		-10, 5, 10, 15, 15, 10, 5, -10,
		-10, 0, 10, 15, 15, 10, 0, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	{ // rook
		0, 0, 5, 10, 10, 5, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		10, 15, 15, 15, 15, 15, 15, 10,
		0, 0, 0, 5, 5, 0, 0, 0,
	},
	{ // queen
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	{ // king: castled corners good, center bad
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}

var pstEG = [6][64]int{
	{ // pawn: push toward promotion
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 5, 5, 5, 5, 5, 5, 5,
		10, 10, 10, 10, 10, 10, 10, 10,
		15, 15, 15, 20, 20, 15, 15, 15,
		25, 25, 25, 30, 30, 25, 25, 25,
		40, 40, 40, 45, 45, 40, 40, 40,
		70, 70, 70, 70, 70, 70, 70, 70,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // knight
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 15, 15, 15, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 15, 15, 15, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	{ // bishop
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 10, 15, 15, 10, 5, -10,
		-10, 5, 10, 15, 15, 10, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	{ // rook: seventh rank
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		15, 15, 15, 15, 15, 15, 15, 15,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // queen
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 10, 10, 5, 0, -5,
		-5, 0, 5, 10, 10, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	{ // king: centralize once queens are off
		-50, -30, -30, -30, -30, -30, -30, -50,
		-30, -20, -10, -10, -10, -10, -20, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -20, -10, -10, -10, -10, -20, -30,
		-50, -30, -30, -30, -30, -30, -30, -50,
	},
}

// Evaluate scores the position for the side to move.
func Evaluate(p *board.Position) int {
	var mg, eg, phase int

	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := p.PieceBB(c, pt)
			phase += phaseWeights[pt] * bb.Count()
			for bb != 0 {
				sq := bb.PopLSB()
				if c == board.Black {
					sq = sq.Flip()
				}
				mg += sign * (materialMG[pt] + pstMG[pt][sq])
				eg += sign * (materialEG[pt] + pstEG[pt][sq])
			}
		}
	}

	center := p.PieceBB(board.White, board.Pawn) | p.PieceBB(board.White, board.Knight)
	mg += centerBonusMG * (center & board.Center).Count()
	center = p.PieceBB(board.Black, board.Pawn) | p.PieceBB(board.Black, board.Knight)
	mg -= centerBonusMG * (center & board.Center).Count()

	if phase > totalPhase {
		phase = totalPhase
	}
	score := (mg*phase + eg*(totalPhase-phase)) / totalPhase

	if p.SideToMove == board.Black {
		score = -score
	}
	return score
}
