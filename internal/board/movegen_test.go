package board

import "testing"

func mustFEN(t *testing.T, fen string) *Position {
	t.Helper()
	p, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return p
}

func TestStartingPositionMoveCount(t *testing.T) {
	p := StartingPosition()
	moves := p.GenerateLegalMoves()
	if len(moves) != 20 {
		t.Fatalf("starting position: got %d legal moves, want 20", len(moves))
	}
}

func TestLegalMovesAreClosedUnderMake(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 5 4",
	}
	for _, fen := range fens {
		p := mustFEN(t, fen)
		for _, m := range p.GenerateLegalMoves() {
			undo, ok := p.MakeMove(m)
			if !ok {
				t.Fatalf("%s: legal move %s rejected by MakeMove", fen, m)
			}
			if p.IsAttacked(p.KingSquare(p.SideToMove.Other()), p.SideToMove) {
				t.Fatalf("%s: move %s leaves king in check", fen, m)
			}
			p.UnmakeMove(undo)
		}
	}
}

func TestCastlingGeneration(t *testing.T) {
	// Both sides castled-ready; white to move can castle both ways.
	p := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	var short, long bool
	for _, m := range p.GenerateLegalMoves() {
		if m.IsCastle() && m.To() == G1 {
			short = true
		}
		if m.IsCastle() && m.To() == C1 {
			long = true
		}
	}
	if !short || !long {
		t.Fatalf("want both castle moves, got short=%v long=%v", short, long)
	}

	// A rook covering f1 forbids kingside castling through check.
	p = mustFEN(t, "5r2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	for _, m := range p.GenerateLegalMoves() {
		if m.IsCastle() && m.To() == G1 {
			t.Fatalf("castling through attacked f1 was generated")
		}
	}
}

func TestEnPassantCapture(t *testing.T) {
	p := mustFEN(t, "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	m, err := p.ParseMove("e5f6")
	if err != nil {
		t.Fatalf("en passant not legal: %v", err)
	}
	if !m.IsEnPassant() {
		t.Fatalf("e5f6 not flagged en passant")
	}
	if _, ok := p.MakeMove(m); !ok {
		t.Fatalf("en passant rejected")
	}
	if p.PieceAt(F5) != NoPiece {
		t.Fatalf("captured pawn still on f5")
	}
	if p.PieceAt(F6) != WhitePawn {
		t.Fatalf("capturing pawn not on f6")
	}
}

func TestPromotionGeneration(t *testing.T) {
	p := mustFEN(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	var promos []PieceType
	for _, m := range p.GenerateLegalMoves() {
		if m.IsPromotion() {
			promos = append(promos, m.Promotion())
		}
	}
	if len(promos) != 4 {
		t.Fatalf("got %d promotion moves, want 4", len(promos))
	}
}

func TestGenerateCapturesSubset(t *testing.T) {
	p := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var all, caps MoveList
	p.GeneratePseudoLegal(&all)
	p.GenerateCaptures(&caps)
	if caps.Count == 0 {
		t.Fatal("no captures in a sharp middlegame position")
	}
	for _, m := range caps.Slice() {
		if !all.Contains(m) {
			t.Fatalf("capture %s not in full move set", m)
		}
		if !p.IsCapture(m) && !m.IsPromotion() {
			t.Fatalf("%s is neither capture nor promotion", m)
		}
	}
}

func TestCheckmateAndStalemateDetection(t *testing.T) {
	mate := mustFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if mate.HasLegalMoves() || !mate.InCheck() {
		t.Fatal("fool's mate position not detected as checkmate")
	}

	stale := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if stale.HasLegalMoves() || stale.InCheck() {
		t.Fatal("stalemate position not detected")
	}
}
