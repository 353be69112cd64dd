// Package helpcode narrows and re-ranks candidates with the per-character help codes of a scheme.
package helpcode

import (
	"strings"

	"github.com/bastiangx/shuangpin/pkg/scheme"
	"github.com/bastiangx/shuangpin/pkg/word"
)

// firstLetter returns the letter a single help code is matched against for the first
// character of w: the first letter of that character's code.
func firstLetter(s *scheme.Scheme, w string) (byte, bool) {
	if w == "" {
		return 0, false
	}
	code, ok := s.HelpCode(scheme.FirstHan(w))
	if !ok || len(code) < 2 {
		return 0, false
	}
	return code[0], true
}

// lastLetter returns the letter compared for the last character of w: the second letter of a
// single character's own code, or the first letter of the last character's code.
func lastLetter(s *scheme.Scheme, w string) (byte, bool) {
	if w == "" {
		return 0, false
	}
	code, ok := s.HelpCode(scheme.LastHan(w))
	if !ok || len(code) < 2 {
		return 0, false
	}
	if scheme.CountHan(w) == 1 {
		return code[1], true
	}
	return code[0], true
}

// ApplyDouble keeps the candidates whose first and last code letters equal codes[0] and
// codes[1]. Both ends need a help code. Order is preserved.
func ApplyDouble(s *scheme.Scheme, cands []word.Item, codes string) []word.Item {
	if len(codes) != 2 {
		return nil
	}
	var out []word.Item
	for _, it := range cands {
		first, okFirst := firstLetter(s, it.Word)
		last, okLast := lastLetter(s, it.Word)
		if okFirst && okLast && first == codes[0] && last == codes[1] {
			out = append(out, it)
		}
	}
	return out
}

// ApplySingle ranks candidates for a single help code in four tiers: first-character matches,
// then last-character matches, then series verbatim, then every candidate that matched neither.
// Each end of a word is judged on its own code, so a word with one uncoded end can still match.
func ApplySingle(s *scheme.Scheme, cands []word.Item, code string, series []word.Item) []word.Item {
	if len(code) != 1 {
		return nil
	}
	c := code[0]

	var firsts, lasts, rest []word.Item
	for _, it := range cands {
		if first, ok := firstLetter(s, it.Word); ok && first == c {
			firsts = append(firsts, it)
			continue
		}
		if last, ok := lastLetter(s, it.Word); ok && last == c {
			lasts = append(lasts, it)
		} else {
			rest = append(rest, it)
		}
	}

	out := make([]word.Item, 0, len(cands)+len(series))
	out = append(out, firsts...)
	out = append(out, lasts...)
	out = append(out, series...)
	out = append(out, rest...)
	return out
}

// Annotate returns the help-code hint shown next to a candidate: the full code of a single
// character, or the first code letter of every character, in parentheses. Words with an
// uncoded character get no hint.
func Annotate(s *scheme.Scheme, w string) string {
	if w == "" {
		return ""
	}
	if scheme.CountHan(w) == 1 {
		code, ok := s.HelpCode(w)
		if !ok {
			return ""
		}
		return "(" + code + ")"
	}
	var b strings.Builder
	b.WriteByte('(')
	for _, r := range w {
		code, ok := s.HelpCode(string(r))
		if !ok || code == "" {
			return ""
		}
		b.WriteByte(code[0])
	}
	b.WriteByte(')')
	return b.String()
}
