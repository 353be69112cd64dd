package utils

import (
	"strings"

	"golang.org/x/text/width"
)

// NormalizeKeys folds full-width letters, digits and spaces (typed while another IME is active)
// to their ASCII keys. Everything else passes through.
func NormalizeKeys(s string) string {
	if isASCII(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '　' {
			b.WriteByte(' ')
			continue
		}
		if p := width.LookupRune(r); p.Kind() == width.EastAsianFullwidth {
			if n := p.Narrow(); n != 0 && n < 0x80 {
				b.WriteRune(n)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
