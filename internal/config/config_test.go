package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	cfg, err := Load("")
	is.NoErr(err)
	is.Equal(cfg.Threads, 0)
	is.Equal(cfg.TTSize, 1<<22)
	is.Equal(cfg.Depth, 6)
	is.Equal(cfg.MoveTime, time.Duration(0))
	is.True(cfg.BookEnabled)
	is.Equal(cfg.LogLevel, "info")
}

func TestLoadFromFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "chessmind.yaml")
	is.NoErr(os.WriteFile(path, []byte(
		"threads: 4\ndepth: 8\nbook_enabled: false\nmove_time: 250ms\n",
	), 0o644))

	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.Threads, 4)
	is.Equal(cfg.Depth, 8)
	is.True(!cfg.BookEnabled)
	is.Equal(cfg.MoveTime, 250*time.Millisecond)
	is.Equal(cfg.TTSize, 1<<22) // default preserved
}

func TestLoadMissingNamedFile(t *testing.T) {
	is := is.New(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	is.True(err != nil)
}

func TestLoadEnvOverride(t *testing.T) {
	is := is.New(t)
	t.Setenv("CHESSMIND_DEPTH", "11")
	t.Setenv("CHESSMIND_LOG_LEVEL", "debug")

	cfg, err := Load("")
	is.NoErr(err)
	is.Equal(cfg.Depth, 11)
	is.Equal(cfg.LogLevel, "debug")
}

func TestLoadRejectsNegativeValues(t *testing.T) {
	is := is.New(t)
	t.Setenv("CHESSMIND_THREADS", "-2")
	_, err := Load("")
	is.True(err != nil)
}
