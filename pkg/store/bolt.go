package store

import (
	"bytes"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

type boltEngine struct {
	db *bolt.DB
}

func openBoltEngine(path string) (Engine, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db %s: %w", path, err)
	}
	return &boltEngine{db: db}, nil
}

func (e *boltEngine) Apply(bucket string, muts ...Mutation) error {
	return e.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		for _, m := range muts {
			if m.Delete {
				err = b.Delete(m.Key)
			} else {
				err = b.Put(m.Key, m.Value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *boltEngine) Get(bucket string, k []byte) ([]byte, error) {
	var out []byte
	err := e.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		if v := b.Get(k); v != nil {
			out = append([]byte{}, v...)
		}
		return nil
	})
	return out, err
}

func (e *boltEngine) Scan(bucket string, from, to []byte, fn func(k, v []byte) error) error {
	return e.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Seek(from); k != nil && bytes.Compare(k, to) <= 0; k, v = c.Next() {
			if err := fn(k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *boltEngine) Close() error {
	return e.db.Close()
}
