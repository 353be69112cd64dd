package store

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/cznic/kv"
)

// kvEngine stores every bucket in one keyspace as bucket + 0x00 + key.
type kvEngine struct {
	db     *kv.DB
	closed bool
	mu     sync.RWMutex
}

// openOrCreateKV opens the database at path, creating it when it does not exist yet.
func openOrCreateKV(path string, options *kv.Options) (*kv.DB, error) {
	db, errOpen := kv.Open(path, options)
	if errOpen != nil {
		var errCreate error
		db, errCreate = kv.Create(path, options)
		if errCreate != nil {
			return nil, fmt.Errorf("failed to open (%v) or create kv db %s: %w", errOpen, path, errCreate)
		}
	}
	return db, nil
}

func openKVEngine(path string) (Engine, error) {
	db, err := openOrCreateKV(path, &kv.Options{})
	if err != nil {
		return nil, err
	}
	return &kvEngine{db: db}, nil
}

func kvKey(bucket string, k []byte) []byte {
	out := make([]byte, 0, len(bucket)+1+len(k))
	out = append(out, bucket...)
	out = append(out, 0)
	return append(out, k...)
}

// Apply wraps the batch in a kv transaction and rolls it back on the first failure.
func (e *kvEngine) Apply(bucket string, muts ...Mutation) (err error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrClosed
	}

	if err = e.db.BeginTransaction(); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := e.db.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
		}
	}()
	for _, m := range muts {
		if m.Delete {
			err = e.db.Delete(kvKey(bucket, m.Key))
		} else {
			err = e.db.Set(kvKey(bucket, m.Key), m.Value)
		}
		if err != nil {
			return err
		}
	}
	return e.db.Commit()
}

func (e *kvEngine) Get(bucket string, k []byte) ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, ErrClosed
	}
	return e.db.Get(nil, kvKey(bucket, k))
}

func (e *kvEngine) Scan(bucket string, from, to []byte, fn func(k, v []byte) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrClosed
	}

	prefixLen := len(bucket) + 1
	upper := kvKey(bucket, to)
	enum, _, err := e.db.Seek(kvKey(bucket, from))
	if err != nil {
		return err
	}
	for {
		k, v, err := enum.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if bytes.Compare(k, upper) > 0 {
			return nil
		}
		if err := fn(k[prefixLen:], v); err != nil {
			return err
		}
	}
}

func (e *kvEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.db.Close()
}
