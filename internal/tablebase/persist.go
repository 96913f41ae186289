package tablebase

import (
	"context"
	"encoding/binary"
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/chessmind/chessmind/internal/board"
)

// PersistentCache stores verdicts in a badger database so probes survive
// restarts. Verdicts are immutable facts about a position, so there is no
// invalidation story; entries live until the database is deleted.
type PersistentCache struct {
	inner Prober
	db    *badger.DB
}

// OpenPersistentCache opens (or creates) a badger store in dir around the
// given prober. A nil inner degrades to NoopProber so the cache can be
// opened before any probing backend is configured.
func OpenPersistentCache(dir string, inner Prober) (*PersistentCache, error) {
	if inner == nil {
		inner = NoopProber{}
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &PersistentCache{inner: inner, db: db}, nil
}

// Close flushes and closes the underlying database.
func (p *PersistentCache) Close() error { return p.db.Close() }

func (p *PersistentCache) MaxPieces() int { return p.inner.MaxPieces() }

func (p *PersistentCache) Probe(ctx context.Context, pos *board.Position) (ProbeResult, error) {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, pos.Hash)

	var res ProbeResult
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return decodeResult(val, &res)
		})
	})
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return ProbeResult{}, err
	}

	res, err = p.inner.Probe(ctx, pos)
	if err != nil {
		return ProbeResult{}, err
	}

	// Best effort: a failed write only costs a future re-probe.
	_ = p.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, encodeResult(res))
	})
	return res, nil
}

func encodeResult(res ProbeResult) []byte {
	buf := make([]byte, 5)
	buf[0] = byte(res.WDL)
	binary.BigEndian.PutUint32(buf[1:], uint32(int32(res.DTZ)))
	return buf
}

func decodeResult(val []byte, res *ProbeResult) error {
	if len(val) != 5 {
		return errors.New("tablebase: corrupt cache entry")
	}
	res.WDL = WDL(int8(val[0]))
	res.DTZ = int(int32(binary.BigEndian.Uint32(val[1:])))
	return nil
}
