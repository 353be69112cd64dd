/*
Package dictionary turns segmented shuangpin input into ranked candidates.

A Dictionary owns the query strategy selector, series expansion, the help-code lookup path and
word mutation. It sits on a partitioned store.Table and keeps four bounded FIFO caches (plain,
single help code, double help code, series) that are all cleared on every successful write.

Reads share a read lock; writes take the lock exclusively, so a lookup never observes a cache
filled from data older than the last write.
*/
package dictionary

import (
	"errors"
	"slices"
	"sync"

	"github.com/bastiangx/shuangpin/pkg/cache"
	"github.com/bastiangx/shuangpin/pkg/predict"
	"github.com/bastiangx/shuangpin/pkg/scheme"
	"github.com/bastiangx/shuangpin/pkg/store"
	"github.com/bastiangx/shuangpin/pkg/word"
	"github.com/charmbracelet/log"
)

var (
	// ErrInvalidWord is returned when a pinyin/word pair fails validation. Nothing is written.
	ErrInvalidWord = errors.New("invalid pinyin or word")
	// ErrNotFound is returned when a mutation targets a word that is not stored.
	ErrNotFound = errors.New("word not found")
)

// Options tunes a Dictionary.
type Options struct {
	PageLimit      int // rows per store query
	CacheCapacity  int // capacity of each cache
	DefaultWeight  int // weight of created words
	OverflowLength int // words this long or longer share one partition per letter
}

// DefaultOptions returns the stock settings.
func DefaultOptions() Options {
	return Options{
		PageLimit:      80,
		CacheCapacity:  128,
		DefaultWeight:  10000,
		OverflowLength: store.DefaultOverflowLength,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.PageLimit <= 0 {
		o.PageLimit = def.PageLimit
	}
	if o.CacheCapacity <= 0 {
		o.CacheCapacity = def.CacheCapacity
	}
	if o.DefaultWeight <= 0 {
		o.DefaultWeight = def.DefaultWeight
	}
	if o.OverflowLength <= 0 {
		o.OverflowLength = def.OverflowLength
	}
	return o
}

type itemCache = cache.Bounded[string, []word.Item]

// Dictionary answers candidate queries and applies word mutations. Safe for concurrent use.
type Dictionary struct {
	scheme *scheme.Scheme
	table  *store.Table
	oracle predict.Oracle
	opts   Options

	mu     sync.RWMutex
	plain  *itemCache
	single *itemCache
	double *itemCache
	series *itemCache
}

// New creates a Dictionary. A nil oracle disables phrase prediction.
func New(s *scheme.Scheme, table *store.Table, oracle predict.Oracle, opts Options) *Dictionary {
	if oracle == nil {
		oracle = predict.Nop
	}
	opts = opts.withDefaults()
	return &Dictionary{
		scheme: s,
		table:  table,
		oracle: oracle,
		opts:   opts,
		plain:  cache.NewBounded[string, []word.Item]("plain", opts.CacheCapacity),
		single: cache.NewBounded[string, []word.Item]("singleCode", opts.CacheCapacity),
		double: cache.NewBounded[string, []word.Item]("doubleCode", opts.CacheCapacity),
		series: cache.NewBounded[string, []word.Item]("series", opts.CacheCapacity),
	}
}

// Scheme returns the scheme the dictionary segments with.
func (d *Dictionary) Scheme() *scheme.Scheme {
	return d.scheme
}

// Options returns the effective options.
func (d *Dictionary) Options() Options {
	return d.opts
}

// Close closes the underlying store.
func (d *Dictionary) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.table.Close()
}

// InvalidateCaches clears all four caches.
func (d *Dictionary) InvalidateCaches() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.invalidate()
}

func (d *Dictionary) invalidate() {
	d.plain.Clear()
	d.single.Clear()
	d.double.Clear()
	d.series.Clear()
	log.Debug("Invalidated candidate caches")
}

// Stats merges the statistics of the four caches.
func (d *Dictionary) Stats() map[string]int {
	stats := map[string]int{
		"pageLimit": d.opts.PageLimit,
	}
	for _, c := range []*itemCache{d.plain, d.single, d.double, d.series} {
		for k, v := range c.Stats() {
			stats[k] = v
		}
	}
	return stats
}

func (d *Dictionary) partition(pinyin string, hanCount int) string {
	return store.Partition(pinyin, hanCount, d.opts.OverflowLength)
}

// cached returns a copy of a cache entry so callers may reorder it freely.
func cached(c *itemCache, key string) ([]word.Item, bool) {
	items, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	return slices.Clone(items), true
}

func remember(c *itemCache, key string, items []word.Item) []word.Item {
	c.Insert(key, slices.Clone(items))
	return items
}

func toItems(rows []store.Record) []word.Item {
	items := make([]word.Item, len(rows))
	for i, r := range rows {
		items[i] = r.Item()
	}
	return items
}
