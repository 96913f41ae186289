package book

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/chessmind/chessmind/internal/game"
)

func TestDefaultBookFirstMove(t *testing.T) {
	is := is.New(t)
	b := Default()
	g := game.New()

	m, ok := b.Probe(g)
	is.True(ok)
	// Every first move in the book is one of the three mainline pawn
	// pushes.
	first := m.String()
	is.True(first == "e2e4" || first == "d2d4" || first == "c2c4")
	is.NoErr(g.PlayMove(m))
}

func TestProbeFollowsLine(t *testing.T) {
	is := is.New(t)
	b := Default()
	g := game.New()

	// Walk the Italian line; the book must answer at every step.
	for _, s := range []string{"e2e4", "e7e5", "g1f3", "b8c6"} {
		is.NoErr(g.PlayMoveStr(s))
	}
	m, ok := b.Probe(g)
	is.True(ok)
	is.Equal(m.String(), "f1c4")
}

func TestProbeMissesOffBookGame(t *testing.T) {
	is := is.New(t)
	b := Default()
	g := game.New()

	is.NoErr(g.PlayMoveStr("a2a3"))
	_, ok := b.Probe(g)
	is.True(!ok)
}

func TestProbeExhaustedLine(t *testing.T) {
	is := is.New(t)
	b := &Book{lines: [][]string{{"e2e4", "e7e5"}}}
	g := game.New()
	is.NoErr(g.PlayMoveStr("e2e4"))
	is.NoErr(g.PlayMoveStr("e7e5"))

	_, ok := b.Probe(g)
	is.True(!ok)
}

func TestProbeSkipsIllegalBookMove(t *testing.T) {
	is := is.New(t)
	// A custom game makes the book's scripted reply illegal.
	b := &Book{lines: [][]string{{"e2e5"}}}
	g := game.New()

	_, ok := b.Probe(g)
	is.True(!ok)
}

func TestLoadBookFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "book.txt")
	content := "# test lines\n" +
		"e2e4 e7e5 g1f3   # italian-ish\n" +
		"\n" +
		"d2d4 d7d5\n"
	is.NoErr(os.WriteFile(path, []byte(content), 0o644))

	b, err := Load(path)
	is.NoErr(err)
	is.Equal(b.Len(), 2)

	g := game.New()
	m, ok := b.Probe(g)
	is.True(ok)
	first := m.String()
	is.True(first == "e2e4" || first == "d2d4")
}

func TestLoadRejectsMalformed(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "book.txt")
	is.NoErr(os.WriteFile(path, []byte("e2e4 nonsense-move\n"), 0o644))

	_, err := Load(path)
	is.True(err != nil)
}

func TestLoadMissingFile(t *testing.T) {
	is := is.New(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	is.True(err != nil)
}
