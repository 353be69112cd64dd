/*
Package scheme holds the shuangpin keyboard tables and the segmentation engine built on them.

A Scheme is constructed once from configuration and is read-only afterwards, so it can be shared
by every session and dictionary without locking.

The default layout is Xiaohe (小鹤双拼): three two-letter initials are folded onto u/i/v, every
final is one key, and vowel-only syllables are typed as fixed two-letter codes:

	sh -> u   ch -> i   zh -> v
	iu -> q   ei -> w   uan -> r   ...
	ang -> ah  eng -> eg  a -> aa  ...
*/
package scheme

import "sort"

// Separator is inserted between groups of a segmentation.
const Separator = '\''

// Scheme is the immutable set of shuangpin tables.
type Scheme struct {
	initials         map[string]string // full initial -> key
	initialsReversed map[string]string // key -> full initial
	zeroFinals       map[string]string // vowel-only syllable -> two-letter code
	zeroReversed     map[string]string // two-letter code -> vowel-only syllable
	finals           map[string]string // full final -> key
	syllables        map[string]struct{}
	helpCodes        map[string]string // Han character -> 2-letter code
}

// Tables lets callers override any of the keymaps when building a Scheme.
// Nil maps fall back to the Xiaohe layout.
type Tables struct {
	Initials   map[string]string
	ZeroFinals map[string]string
	Finals     map[string]string
}

// New builds a Scheme from the given tables, syllable set and help-code map.
func New(tables Tables, syllables map[string]struct{}, helpCodes map[string]string) *Scheme {
	if tables.Initials == nil {
		tables.Initials = xiaoheInitials
	}
	if tables.ZeroFinals == nil {
		tables.ZeroFinals = xiaoheZeroFinals
	}
	if tables.Finals == nil {
		tables.Finals = xiaoheFinals
	}
	if syllables == nil {
		syllables = map[string]struct{}{}
	}
	if helpCodes == nil {
		helpCodes = map[string]string{}
	}

	s := &Scheme{
		initials:         copyMap(tables.Initials),
		initialsReversed: reverse(tables.Initials),
		zeroFinals:       copyMap(tables.ZeroFinals),
		zeroReversed:     reverse(tables.ZeroFinals),
		finals:           copyMap(tables.Finals),
		syllables:        make(map[string]struct{}, len(syllables)),
		helpCodes:        make(map[string]string, len(helpCodes)),
	}
	for syl := range syllables {
		s.syllables[syl] = struct{}{}
	}
	for han, code := range helpCodes {
		s.helpCodes[han] = code
	}
	return s
}

// NewXiaohe builds the default Xiaohe scheme.
func NewXiaohe(syllables map[string]struct{}, helpCodes map[string]string) *Scheme {
	return New(Tables{}, syllables, helpCodes)
}

// IsSyllable reports whether quanpin is a valid full-pinyin syllable.
func (s *Scheme) IsSyllable(quanpin string) bool {
	_, ok := s.syllables[quanpin]
	return ok
}

// SyllableCount returns the size of the valid syllable set.
func (s *Scheme) SyllableCount() int {
	return len(s.syllables)
}

// HelpCode returns the 2-letter help code of a single Han character.
func (s *Scheme) HelpCode(han string) (string, bool) {
	code, ok := s.helpCodes[han]
	return code, ok
}

// HelpCodeCount returns the number of characters with a help code.
func (s *Scheme) HelpCodeCount() int {
	return len(s.helpCodes)
}

// InitialKey returns the key typed for a full initial such as "zh".
func (s *Scheme) InitialKey(initial string) (string, bool) {
	k, ok := s.initials[initial]
	return k, ok
}

// ExpandInitial maps a one-letter group to the initial it stands for.
// Letters without a folded initial are returned unchanged.
func (s *Scheme) ExpandInitial(key string) string {
	if full, ok := s.initialsReversed[key]; ok {
		return full
	}
	return key
}

// Decode converts one shuangpin group into full pinyin. Two-letter groups decode to a
// syllable or "" when no valid syllable matches; vowel-only codes are matched first.
func (s *Scheme) Decode(sp string) string {
	if zero, ok := s.zeroReversed[sp]; ok {
		return zero
	}
	if len(sp) != 2 {
		return ""
	}
	initial := s.ExpandInitial(sp[:1])

	var finals []string
	for final, key := range s.finals {
		if key == sp[1:] {
			finals = append(finals, final)
		}
	}
	if len(finals) == 0 {
		return ""
	}
	// Map order is random; sort so a colliding table still decodes deterministically.
	sort.Strings(finals)

	res := ""
	for _, final := range finals {
		if s.IsSyllable(initial + final) {
			res = initial + final
		}
	}
	return res
}

// Encode converts a full-pinyin syllable back into its two shuangpin keys.
func (s *Scheme) Encode(quanpin string) (string, bool) {
	if code, ok := s.zeroFinals[quanpin]; ok {
		return code, true
	}
	if !s.IsSyllable(quanpin) {
		return "", false
	}
	for _, n := range []int{2, 1} {
		if len(quanpin) <= n {
			continue
		}
		initial := quanpin[:n]
		key := initial
		if n == 2 {
			var ok bool
			if key, ok = s.initials[initial]; !ok {
				continue
			}
		}
		if fk, ok := s.finals[quanpin[n:]]; ok {
			return key + fk, true
		}
	}
	return "", false
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func reverse(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

var xiaoheInitials = map[string]string{
	"sh": "u",
	"ch": "i",
	"zh": "v",
}

var xiaoheZeroFinals = map[string]string{
	"a":   "aa",
	"ai":  "ai",
	"ao":  "ao",
	"an":  "an",
	"ang": "ah",
	"e":   "ee",
	"ei":  "ei",
	"en":  "en",
	"eng": "eg",
	"er":  "er",
	"o":   "oo",
	"ou":  "ou",
}

var xiaoheFinals = map[string]string{
	"iu":   "q",
	"ei":   "w",
	"e":    "e",
	"uan":  "r",
	"ue":   "t",
	"ve":   "t",
	"un":   "y",
	"u":    "u",
	"i":    "i",
	"uo":   "o",
	"o":    "o",
	"ie":   "p",
	"a":    "a",
	"ong":  "s",
	"iong": "s",
	"ai":   "d",
	"en":   "f",
	"eng":  "g",
	"ang":  "h",
	"an":   "j",
	"uai":  "k",
	"ing":  "k",
	"uang": "l",
	"iang": "l",
	"ou":   "z",
	"ua":   "x",
	"ia":   "x",
	"ao":   "c",
	"ui":   "v",
	"v":    "v",
	"in":   "b",
	"iao":  "n",
	"ian":  "m",
}
