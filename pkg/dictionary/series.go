package dictionary

import (
	"github.com/bastiangx/shuangpin/pkg/scheme"
	"github.com/bastiangx/shuangpin/pkg/word"
	"github.com/charmbracelet/log"
)

// LookupSeries returns the exact candidates for seq followed by the candidates of every shorter
// group-aligned prefix, longest first. When nothing matches seq exactly, the phrase oracle's
// guess for the whole sequence takes the first slot.
func (d *Dictionary) LookupSeries(seq, seg string) []word.Item {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lookupSeries(seq, seg)
}

func (d *Dictionary) lookupSeries(seq, seg string) []word.Item {
	switch len(seq) {
	case 0:
		return nil
	case 1:
		return singleLetterItems(seq)
	}
	if items, ok := cached(d.series, seq); ok {
		return items
	}

	items := d.lookup(seq, seg)
	if len(items) == 0 {
		quanpin := d.scheme.ToQuanpin(seg)
		if phrase := d.oracle.Predict(quanpin); phrase != "" {
			log.Debugf("Oracle predicted %q for %q", phrase, quanpin)
			items = append(items, word.Item{Key: seq, Word: phrase, Weight: 1})
		}
	}

	for prefix, ok := scheme.TrimLast(seg); ok; prefix, ok = scheme.TrimLast(prefix) {
		items = append(items, d.lookup(scheme.Join(prefix), prefix)...)
	}
	return remember(d.series, seq, items)
}
