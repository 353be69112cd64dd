package scheme

import "strings"

// Segment splits a shuangpin letter string into syllable and abbreviation groups, forward
// greedy: two letters are taken whenever they decode to a valid syllable, otherwise one.
// There is no backtracking, so a later, longer parse is never preferred.
func (s *Scheme) Segment(sp string) string {
	if len(sp) <= 1 {
		return sp
	}
	var b strings.Builder
	b.Grow(len(sp) + len(sp)/2)
	for start := 0; start < len(sp); {
		if b.Len() > 0 {
			b.WriteByte(Separator)
		}
		if start+2 <= len(sp) && s.IsSyllable(s.Decode(sp[start:start+2])) {
			b.WriteString(sp[start : start+2])
			start += 2
			continue
		}
		b.WriteByte(sp[start])
		start++
	}
	return b.String()
}

// Groups splits a segmentation into its groups.
func Groups(seg string) []string {
	if seg == "" {
		return nil
	}
	return strings.Split(seg, string(Separator))
}

// Join removes the separators from a segmentation.
func Join(seg string) string {
	return strings.ReplaceAll(seg, string(Separator), "")
}

// TrimLast drops the last group of a segmentation. ok is false when only one group is left.
func TrimLast(seg string) (string, bool) {
	pos := strings.LastIndexByte(seg, Separator)
	if pos < 0 {
		return seg, false
	}
	return seg[:pos], true
}

// IsAllComplete reports whether pure has even length and its segmentation holds only
// two-letter syllable groups.
func IsAllComplete(pure, seg string) bool {
	if len(pure)%2 != 0 {
		return false
	}
	for _, g := range Groups(seg) {
		if len(g) != 2 {
			return false
		}
	}
	return true
}

// ToQuanpin converts a shuangpin segmentation into separated full pinyin, e.g.
// "ni'hc" -> "ni'hao". Abbreviation groups expand to their initial.
func (s *Scheme) ToQuanpin(seg string) string {
	groups := Groups(seg)
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		switch len(g) {
		case 1:
			parts = append(parts, s.ExpandInitial(g))
		case 2:
			parts = append(parts, s.Decode(g))
		}
	}
	return strings.Join(parts, string(Separator))
}

// Abbreviation returns the first letter of every two-letter syllable in a full-syllable
// pinyin string ("nihc" -> "nh").
func Abbreviation(pinyin string) string {
	var b strings.Builder
	b.Grow(len(pinyin)/2 + 1)
	for i := 0; i < len(pinyin); i += 2 {
		b.WriteByte(pinyin[i])
	}
	return b.String()
}
