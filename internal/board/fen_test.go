package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"4k3/8/8/8/8/8/8/4K3 b - - 37 99",
	}
	for _, fen := range fens {
		p := mustFEN(t, fen)
		if got := p.FEN(); got != fen {
			t.Errorf("round trip:\n in: %s\nout: %s", fen, got)
		}
	}
}

func TestFromFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",              // missing fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",          // 7 ranks
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // bad digit
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1", // bad castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq j9 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1",
		"8/8/8/8/8/8/8/8 w - - 0 1", // no kings
	}
	for _, fen := range bad {
		if _, err := FromFEN(fen); err == nil {
			t.Errorf("FromFEN(%q) accepted malformed input", fen)
		}
	}
}

func TestFromFENRejectsIllegalPositions(t *testing.T) {
	bad := []struct {
		fen    string
		reason string
	}{
		{"k6Q/8/8/8/8/8/8/K7 w - - 0 1", "side not to move in check"},
		{"4k3/8/8/8/8/8/8/KK6 w - - 0 1", "two white kings"},
		{"4k3/8/8/8/8/8/P7/4K2P w - - 0 1", "pawn on rank 1"},
		{"P3k3/8/8/8/8/8/8/4K3 w - - 0 1", "pawn on rank 8"},
		{"4k3/8/8/8/P7/PPPP4/PPPP4/4K3 b - - 0 1", "nine white pawns"},
		{"rnbqkbnr/pppppppp/8/8/8/NNNNNNNN/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "too many white pieces"},
	}
	for _, tc := range bad {
		if _, err := FromFEN(tc.fen); err == nil {
			t.Errorf("FromFEN(%q) accepted %s", tc.fen, tc.reason)
		}
	}
	// The mirror of the check case is fine: the mover may be in check.
	if _, err := FromFEN("k6Q/8/8/8/8/8/8/K7 b - - 0 1"); err != nil {
		t.Errorf("position with the mover in check rejected: %v", err)
	}
}

func TestStartingPositionHashStable(t *testing.T) {
	a := StartingPosition()
	b := StartingPosition()
	if a.Hash != b.Hash || a.Hash == 0 {
		t.Fatalf("starting hash unstable: %x vs %x", a.Hash, b.Hash)
	}
	// A transposition reaches the same hash through a different move order.
	seq1 := []string{"g1f3", "g8f6", "b1c3"}
	seq2 := []string{"b1c3", "g8f6", "g1f3"}
	for _, s := range seq1 {
		m, err := a.ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		a.MakeMove(m)
	}
	for _, s := range seq2 {
		m, err := b.ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		b.MakeMove(m)
	}
	if a.Hash != b.Hash {
		t.Fatalf("transposition hashes differ: %x vs %x", a.Hash, b.Hash)
	}
}
