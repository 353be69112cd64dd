package session

import "container/ring"

// KeyKind classifies a physical key.
type KeyKind int

const (
	KeyOther KeyKind = iota
	KeyLetter
	KeyDigit
	KeySpace
	KeyBackspace
	KeyEnter
	KeyEscape
	KeyShift // modifier release
	KeyTab
)

func (k KeyKind) String() string {
	switch k {
	case KeyLetter:
		return "letter"
	case KeyDigit:
		return "digit"
	case KeySpace:
		return "space"
	case KeyBackspace:
		return "backspace"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	case KeyShift:
		return "shift"
	case KeyTab:
		return "tab"
	default:
		return "other"
	}
}

// Key is one physical key event. Char holds the lowercase letter or the digit; Shift reports
// whether the modifier was held while a letter was pressed.
type Key struct {
	Kind  KeyKind
	Char  byte
	Shift bool
}

// Letter builds a letter key event from an ASCII letter of either case.
func Letter(c byte, shift bool) Key {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	return Key{Kind: KeyLetter, Char: c, Shift: shift}
}

// KeyFromByte maps a typed byte to a key event. Uppercase letters are letters typed with
// the modifier held; '\b' is backspace, '\n' enter, 0x1b escape.
func KeyFromByte(b byte) Key {
	switch {
	case b >= 'a' && b <= 'z':
		return Letter(b, false)
	case b >= 'A' && b <= 'Z':
		return Letter(b, true)
	case b >= '0' && b <= '9':
		return Key{Kind: KeyDigit, Char: b}
	}
	switch b {
	case ' ':
		return Key{Kind: KeySpace}
	case '\b', 0x7f:
		return Key{Kind: KeyBackspace}
	case '\n', '\r':
		return Key{Kind: KeyEnter}
	case 0x1b:
		return Key{Kind: KeyEscape}
	case '\t':
		return Key{Kind: KeyTab}
	}
	return Key{Kind: KeyOther, Char: b}
}

// KeysFromString maps every byte of s with KeyFromByte.
func KeysFromString(s string) []Key {
	keys := make([]Key, len(s))
	for i := 0; i < len(s); i++ {
		keys[i] = KeyFromByte(s[i])
	}
	return keys
}

// keyHistory keeps the most recent raw keys, oldest dropped first.
type keyHistory struct {
	next *ring.Ring
	size int
	cap  int
}

func newKeyHistory(capacity int) *keyHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &keyHistory{next: ring.New(capacity), cap: capacity}
}

func (h *keyHistory) push(k Key) {
	h.next.Value = k
	h.next = h.next.Next()
	if h.size < h.cap {
		h.size++
	}
}

// keys returns the history oldest first.
func (h *keyHistory) keys() []Key {
	out := make([]Key, 0, h.size)
	r := h.next.Move(-h.size)
	for i := 0; i < h.size; i++ {
		out = append(out, r.Value.(Key))
		r = r.Next()
	}
	return out
}

func (h *keyHistory) clear() {
	for i := 0; i < h.cap; i++ {
		h.next.Value = nil
		h.next = h.next.Next()
	}
	h.size = 0
}
