package dictionary

import (
	"fmt"

	"github.com/bastiangx/shuangpin/pkg/scheme"
	"github.com/bastiangx/shuangpin/pkg/store"
	"github.com/bastiangx/shuangpin/pkg/word"
	"github.com/charmbracelet/log"
)

// maxCreatingLength caps the pinyin considered by WordsForCreating at four syllables.
const maxCreatingLength = 8

// validate checks that pinyin is a run of full syllables with one syllable per character of w
// and returns its abbreviation.
func validate(pinyin, w string) (string, error) {
	if pinyin == "" || w == "" || len(pinyin)%2 != 0 {
		return "", fmt.Errorf("%w: %q/%q", ErrInvalidWord, pinyin, w)
	}
	for i := 0; i < len(pinyin); i++ {
		if pinyin[i] < 'a' || pinyin[i] > 'z' {
			return "", fmt.Errorf("%w: %q has a non-letter", ErrInvalidWord, pinyin)
		}
	}
	abbr := scheme.Abbreviation(pinyin)
	if len(abbr) != len(pinyin)/2 || scheme.CountHan(w)*2 != len(pinyin) {
		return "", fmt.Errorf("%w: %q does not spell %d characters", ErrInvalidWord, pinyin, scheme.CountHan(w))
	}
	return abbr, nil
}

// CreateWord stores w under pinyin with the default weight. Creating a stored word succeeds
// without writing.
func (d *Dictionary) CreateWord(pinyin, w string) error {
	abbr, err := validate(pinyin, w)
	if err != nil {
		log.Debugf("Rejected new word: %v", err)
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	partition := d.partition(pinyin, len(abbr))
	exists, err := d.table.Exists(partition, pinyin, w)
	if err != nil {
		log.Errorf("Checking %s/%s failed: %v", pinyin, w, err)
		return fmt.Errorf("failed to check word: %w", err)
	}
	if exists {
		return nil
	}
	rec := store.Record{Key: pinyin, Abbr: abbr, Word: w, Weight: d.opts.DefaultWeight}
	if err := d.table.Insert(partition, rec); err != nil {
		log.Errorf("Inserting %s/%s failed: %v", pinyin, w, err)
		return fmt.Errorf("failed to insert word: %w", err)
	}
	log.Debugf("Created %s (%s) in %s", w, pinyin, partition)
	d.invalidate()
	return nil
}

// UpdateWeight moves w to the front of its pinyin group. pinyin may be longer than w; only
// the syllables spelling w are used.
func (d *Dictionary) UpdateWeight(pinyin, w string) error {
	if n := 2 * scheme.CountHan(w); len(pinyin) > n {
		pinyin = pinyin[:n]
	}
	abbr, err := validate(pinyin, w)
	if err != nil {
		log.Debugf("Rejected weight update: %v", err)
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	partition := d.partition(pinyin, len(abbr))
	ok, err := d.table.Promote(partition, pinyin, w)
	if err != nil {
		log.Errorf("Promoting %s/%s failed: %v", pinyin, w, err)
		return fmt.Errorf("failed to update weight: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, pinyin, w)
	}
	d.invalidate()
	return nil
}

// DeleteWord removes w from pinyin's group.
func (d *Dictionary) DeleteWord(pinyin, w string) error {
	abbr, err := validate(pinyin, w)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	partition := d.partition(pinyin, len(abbr))
	ok, err := d.table.Delete(partition, pinyin, w)
	if err != nil {
		log.Errorf("Deleting %s/%s failed: %v", pinyin, w, err)
		return fmt.Errorf("failed to delete word: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, pinyin, w)
	}
	d.invalidate()
	return nil
}

// WordsForCreating lists the stored words of every full-syllable prefix of pinyin, up to four
// syllables, longest prefix first. They are the building blocks offered while composing a new word.
func (d *Dictionary) WordsForCreating(pinyin string) []word.Item {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n := len(pinyin) - len(pinyin)%2
	if n > maxCreatingLength {
		n = maxCreatingLength
	}
	var items []word.Item
	for i := n; i >= 2; i -= 2 {
		prefix := pinyin[:i]
		partition := d.partition(prefix, i/2)
		rows, err := d.table.SelectByKey(partition, prefix, d.opts.PageLimit)
		if err != nil {
			log.Errorf("Lookup %q in %s failed: %v", prefix, partition, err)
			continue
		}
		items = append(items, toItems(rows)...)
	}
	return items
}
