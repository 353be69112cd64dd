package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// Table is the partitioned dictionary table. Reads go straight to the engine; writes that
// read-modify-write are serialized by the table.
type Table struct {
	engine Engine
	mu     sync.Mutex
}

// NewTable wraps an engine.
func NewTable(engine Engine) *Table {
	return &Table{engine: engine}
}

// Open opens the named engine at path and wraps it in a Table.
func Open(engineName, path string) (*Table, error) {
	engine, err := OpenEngine(engineName, path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Opened %s dictionary store at %s", engineName, path)
	return NewTable(engine), nil
}

// Close closes the underlying engine.
func (t *Table) Close() error {
	return t.engine.Close()
}

// SelectByKey returns the rows whose key equals key, highest weight first.
func (t *Table) SelectByKey(partition, key string, limit int) ([]Record, error) {
	from, to := bounds(keyGroupPrefix(key))
	rows, err := t.scanRows(partition, from, to, nil)
	if err != nil {
		return nil, err
	}
	return orderByWeight(rows, limit), nil
}

// SelectKeyRange returns the rows with lo <= key <= hi, highest weight first.
func (t *Table) SelectKeyRange(partition, lo, hi string, limit int) ([]Record, error) {
	if lo > hi {
		return nil, nil
	}
	from := append([]byte{keyPrefix, sep}, lo...)
	_, to := bounds(keyGroupPrefix(hi))
	rows, err := t.scanRows(partition, from, to, func(r Record) bool {
		return r.Key >= lo && r.Key <= hi
	})
	if err != nil {
		return nil, err
	}
	return orderByWeight(rows, limit), nil
}

// SelectByAbbr returns the rows whose abbreviation equals abbr, highest weight first.
func (t *Table) SelectByAbbr(partition, abbr string, limit int) ([]Record, error) {
	rows, err := t.SelectByAbbrUnordered(partition, abbr)
	if err != nil {
		return nil, err
	}
	return orderByWeight(rows, limit), nil
}

// SelectByAbbrUnordered returns every row whose abbreviation equals abbr in storage order.
func (t *Table) SelectByAbbrUnordered(partition, abbr string) ([]Record, error) {
	from, to := bounds(abbrGroupPrefix(abbr))
	var refs [][2]string
	err := t.engine.Scan(partition, from, to, func(k, _ []byte) error {
		key, value, err := parseAbbrKey(k)
		if err != nil {
			log.Warnf("Skipping index entry in %s: %v", partition, err)
			return nil
		}
		refs = append(refs, [2]string{key, value})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("abbreviation scan on %s: %w", partition, err)
	}

	rows := make([]Record, 0, len(refs))
	for _, ref := range refs {
		r, ok, err := t.get(partition, ref[0], ref[1])
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

// Exists reports whether a row with key and word exists.
func (t *Table) Exists(partition, key, value string) (bool, error) {
	_, ok, err := t.get(partition, key, value)
	return ok, err
}

// Insert writes a row and its abbreviation index entry, replacing an existing row.
func (t *Table) Insert(partition string, r Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.put(partition, r)
}

// Promote sets the weight of (key, value) to one more than the highest weight sharing key.
// It reports false when the row does not exist.
func (t *Table) Promote(partition, key, value string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok, err := t.get(partition, key, value)
	if err != nil || !ok {
		return false, err
	}
	group, err := t.SelectByKey(partition, key, 1)
	if err != nil {
		return false, err
	}
	top := r.Weight
	if len(group) > 0 && group[0].Weight > top {
		top = group[0].Weight
	}
	r.Weight = top + 1
	if err := t.put(partition, r); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes (key, value) and reports whether it existed.
func (t *Table) Delete(partition, key, value string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok, err := t.get(partition, key, value)
	if err != nil || !ok {
		return false, err
	}
	err = t.engine.Apply(partition,
		Del(abbrKey(r.Abbr, r.Key, r.Word)),
		Del(rowKey(key, value)),
	)
	if err != nil {
		return false, fmt.Errorf("delete %s/%s: %w", key, value, err)
	}
	return true, nil
}

// Count returns the number of rows in a partition.
func (t *Table) Count(partition string) (int, error) {
	from, to := bounds([]byte{keyPrefix, sep})
	n := 0
	err := t.engine.Scan(partition, from, to, func(_, _ []byte) error {
		n++
		return nil
	})
	return n, err
}

func (t *Table) get(partition, key, value string) (Record, bool, error) {
	v, err := t.engine.Get(partition, rowKey(key, value))
	if err != nil {
		return Record{}, false, fmt.Errorf("get %s/%s: %w", key, value, err)
	}
	if v == nil {
		return Record{}, false, nil
	}
	r, err := decodeRecord(v)
	if err != nil {
		return Record{}, false, fmt.Errorf("decode %s/%s: %w", key, value, err)
	}
	return r, true, nil
}

func (t *Table) put(partition string, r Record) error {
	v, err := encodeRecord(r)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", r.Key, r.Word, err)
	}
	// a row and its index entry are written together
	err = t.engine.Apply(partition,
		Put(rowKey(r.Key, r.Word), v),
		Put(abbrKey(r.Abbr, r.Key, r.Word), []byte{}),
	)
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", r.Key, r.Word, err)
	}
	return nil
}

func (t *Table) scanRows(partition string, from, to []byte, keep func(Record) bool) ([]Record, error) {
	var rows []Record
	err := t.engine.Scan(partition, from, to, func(_, v []byte) error {
		r, err := decodeRecord(v)
		if err != nil {
			log.Warnf("Skipping undecodable row in %s: %v", partition, err)
			return nil
		}
		if keep == nil || keep(r) {
			rows = append(rows, r)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", partition, err)
	}
	return rows, nil
}

// orderByWeight sorts rows by weight, highest first, keeping storage order among equals.
func orderByWeight(rows []Record, limit int) []Record {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Weight > rows[j].Weight
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
