package dictionary

import (
	"github.com/bastiangx/shuangpin/pkg/helpcode"
	"github.com/bastiangx/shuangpin/pkg/word"
)

// LookupWithHelpCodes filters the series candidates of pure by one or two trailing help codes.
// original is the whole typed sequence including the codes; it keys the help caches and, for a
// single code, its plain series is appended as the fallback tier.
func (d *Dictionary) LookupWithHelpCodes(pure, pureSeg, original, codes string) []word.Item {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var c *itemCache
	switch len(codes) {
	case 1:
		c = d.single
	case 2:
		c = d.double
	default:
		return d.lookupSeries(pure, pureSeg)
	}
	if items, ok := cached(c, original); ok {
		return items
	}

	cands := d.lookupSeries(pure, pureSeg)
	var items []word.Item
	if len(codes) == 1 {
		// Series expansion never consults help codes, so this cannot re-enter the help path.
		fallback := d.lookupSeries(original, d.scheme.Segment(original))
		items = helpcode.ApplySingle(d.scheme, cands, codes, fallback)
	} else {
		items = helpcode.ApplyDouble(d.scheme, cands, codes)
	}
	return remember(c, original, items)
}
