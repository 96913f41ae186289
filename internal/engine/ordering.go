package engine

import "github.com/chessmind/chessmind/internal/board"

// Move ordering tiers: the table move first, then killers, then captures by
// most-valuable-victim / least-valuable-attacker, then quiets by history.
const (
	ttMoveScore    = 10000
	killerScore    = 7000
	captureBase    = 5000
	historyCeiling = 4000
)

// orderValue ranks piece kinds for MVV-LVA; values stay small so capture
// scores cannot cross into the killer tier.
var orderValue = [7]int{1, 3, 3, 5, 9, 0, 0}

// MoveOrderer scores and picks moves for one search worker. Killer and
// history state is private to the worker; sharing it across threads buys
// nothing and costs synchronization.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [64][64]int
}

// NewMoveOrderer returns an orderer with empty heuristic state.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear wipes killers and history between searches.
func (o *MoveOrderer) Clear() {
	*o = MoveOrderer{}
}

// RecordKiller remembers a quiet move that caused a beta cutoff at ply.
func (o *MoveOrderer) RecordKiller(ply int, m board.Move) {
	if ply >= MaxPly || o.killers[ply][0] == m {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

// RecordHistory rewards a quiet cutoff move, weighted by remaining depth.
func (o *MoveOrderer) RecordHistory(m board.Move, depth int) {
	h := &o.history[m.From()][m.To()]
	*h += depth * depth
	if *h >= historyCeiling {
		// Halve everything so recent cutoffs keep outranking old ones
		// and history never crosses into the capture tier.
		for from := range o.history {
			for to := range o.history[from] {
				o.history[from][to] /= 2
			}
		}
	}
}

// ScoreMoves fills scores for ml's moves in the given position.
func (o *MoveOrderer) ScoreMoves(p *board.Position, ml *board.MoveList, scores []int, ply int, ttMove board.Move) {
	for i, m := range ml.Slice() {
		switch {
		case m == ttMove:
			scores[i] = ttMoveScore
		case p.IsCapture(m):
			victim := board.Pawn // en passant
			if target := p.PieceAt(m.To()); target != board.NoPiece {
				victim = target.Type()
			}
			attacker := p.PieceAt(m.From()).Type()
			scores[i] = captureBase + orderValue[victim]*100 - orderValue[attacker]
		case ply < MaxPly && (m == o.killers[ply][0] || m == o.killers[ply][1]):
			scores[i] = killerScore
		default:
			scores[i] = o.history[m.From()][m.To()]
		}
	}
}

// PickMove moves the highest-scored remaining move into slot i and returns
// it. Sorting lazily wins when a cutoff ends the loop early. The winner is
// rotated in rather than swapped, so equal scores keep generation order.
func PickMove(ml *board.MoveList, scores []int, i int) board.Move {
	best := i
	for j := i + 1; j < ml.Count; j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	m, s := ml.Moves[best], scores[best]
	copy(ml.Moves[i+1:best+1], ml.Moves[i:best])
	copy(scores[i+1:best+1], scores[i:best])
	ml.Moves[i], scores[i] = m, s
	return m
}
