/*
Package store implements the partitioned dictionary table on top of an ordered key/value engine.

Two engines are registered by default:

	bolt  one bbolt-format file, one bucket per partition
	kv    a cznic/kv database, partitions folded into the key prefix

Both keep keys sorted, which the table relies on for exact, prefix and range selects.
*/
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// DefaultEngine is used when no engine name is configured.
const DefaultEngine = "bolt"

var (
	// ErrUnknownEngine is returned by Open for an unregistered engine name.
	ErrUnknownEngine = errors.New("unknown storage engine")
	// ErrClosed is returned by operations on a closed engine.
	ErrClosed = errors.New("storage engine closed")
)

// Mutation is one write of a batch. Value is ignored when Delete is set.
type Mutation struct {
	Key    []byte
	Value  []byte
	Delete bool
}

// Put builds a set mutation.
func Put(k, v []byte) Mutation { return Mutation{Key: k, Value: v} }

// Del builds a delete mutation.
func Del(k []byte) Mutation { return Mutation{Key: k, Delete: true} }

// Engine is an ordered key/value store split into named buckets.
type Engine interface {
	// Apply writes every mutation to bucket in one transaction: all of them land or none do.
	Apply(bucket string, muts ...Mutation) error
	// Get returns nil without error when k is missing.
	Get(bucket string, k []byte) ([]byte, error)
	// Scan visits every key in [from, to] of bucket in ascending order. The slices passed to
	// fn are only valid during the call.
	Scan(bucket string, from, to []byte, fn func(k, v []byte) error) error
	Close() error
}

// Opener creates an engine at path.
type Opener func(path string) (Engine, error)

var (
	enginesMu sync.RWMutex
	engines   = map[string]Opener{
		"bolt": openBoltEngine,
		"kv":   openKVEngine,
	}
)

// RegisterEngine makes an engine available to Open under name.
func RegisterEngine(name string, fn Opener) {
	enginesMu.Lock()
	defer enginesMu.Unlock()
	engines[name] = fn
}

// Engines lists the registered engine names.
func Engines() []string {
	enginesMu.RLock()
	defer enginesMu.RUnlock()
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenEngine opens the named engine at path. An empty name selects DefaultEngine.
func OpenEngine(name, path string) (Engine, error) {
	if name == "" {
		name = DefaultEngine
	}
	enginesMu.RLock()
	fn, ok := engines[name]
	enginesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return fn(path)
}
