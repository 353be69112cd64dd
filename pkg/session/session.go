/*
Package session implements the per-focus input state machine.

A Session accumulates typed letters, re-segments them after every accepted key, decides whether
the trailing letters are help codes and asks the dictionary for the ranked candidate list.

	Idle -> Composing -> HelpPending (one trailing code) / HelpActive (two codes) -> Idle

A Session is not safe for concurrent use; many sessions may share one Dictionary.
*/
package session

import (
	"strings"

	"github.com/bastiangx/shuangpin/pkg/dictionary"
	"github.com/bastiangx/shuangpin/pkg/scheme"
	"github.com/bastiangx/shuangpin/pkg/word"
	"github.com/charmbracelet/log"
)

// State is the composition state.
type State int

const (
	Idle State = iota
	Composing
	HelpPending
	HelpActive
)

func (s State) String() string {
	switch s {
	case Composing:
		return "composing"
	case HelpPending:
		return "help-pending"
	case HelpActive:
		return "help-active"
	default:
		return "idle"
	}
}

// HelpPredicate decides from the case pattern of the typed letters whether the last two letters
// are help codes.
type HelpPredicate func(withCase string) bool

// NeverFullHelp is the default HelpPredicate.
func NeverFullHelp(string) bool { return false }

const (
	defaultKeyHistory  = 100
	defaultMaxSequence = 60
)

// Option configures a Session.
type Option func(*Session)

// WithFullHelp sets the predicate that switches on two-code help mode.
func WithFullHelp(p HelpPredicate) Option {
	return func(s *Session) {
		if p != nil {
			s.fullHelp = p
		}
	}
}

// WithKeyHistory sets the capacity of the raw key history.
func WithKeyHistory(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.history = newKeyHistory(n)
		}
	}
}

// WithMaxSequence caps the number of letters composed at once. Further letters are ignored.
func WithMaxSequence(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxSequence = n
		}
	}
}

// Session is the input state of one focus.
type Session struct {
	dict        *dictionary.Dictionary
	scheme      *scheme.Scheme
	fullHelp    HelpPredicate
	history     *keyHistory
	maxSequence int

	seq         []byte
	seqWithCase []byte
	pure        string
	seg         string
	pureSeg     string
	helpCodes   string
	boundary    int
	state       State
	candidates  []word.Item
}

// New creates an idle session on dict.
func New(dict *dictionary.Dictionary, opts ...Option) *Session {
	s := &Session{
		dict:        dict,
		scheme:      dict.Scheme(),
		fullHelp:    NeverFullHelp,
		history:     newKeyHistory(defaultKeyHistory),
		maxSequence: defaultMaxSequence,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleKey consumes one key and reports whether the candidates were recomputed.
func (s *Session) HandleKey(k Key) bool {
	s.history.push(k)

	switch k.Kind {
	case KeyLetter:
		if len(s.seq) >= s.maxSequence {
			log.Debugf("Sequence limit %d reached, ignoring %q", s.maxSequence, k.Char)
			return false
		}
		s.seq = append(s.seq, k.Char)
		if k.Shift {
			s.seqWithCase = append(s.seqWithCase, k.Char-('a'-'A'))
		} else {
			s.seqWithCase = append(s.seqWithCase, k.Char)
		}
	case KeyBackspace:
		if len(s.seq) > 0 {
			s.seq = s.seq[:len(s.seq)-1]
			s.seqWithCase = s.seqWithCase[:len(s.seqWithCase)-1]
		}
	case KeyEnter, KeyEscape, KeyShift:
		s.Reset()
		return false
	default:
		// digits and space select upstream; everything else is ignored
		return false
	}

	s.recompute()
	return true
}

// HandleKeys feeds keys in order.
func (s *Session) HandleKeys(keys ...Key) {
	for _, k := range keys {
		s.HandleKey(k)
	}
}

// Type feeds a string through KeyFromByte.
func (s *Session) Type(text string) {
	s.HandleKeys(KeysFromString(text)...)
}

func (s *Session) recompute() {
	seq := string(s.seq)
	s.pure = seq
	s.helpCodes = ""
	s.boundary = 0
	s.seg = s.scheme.Segment(seq)
	s.pureSeg = s.seg

	switch {
	case len(seq) == 0:
		s.state = Idle
		s.candidates = nil

	case len(seq) > 2 && s.fullHelp(string(s.seqWithCase)):
		s.boundary = len(seq) - 2
		s.useHelp(seq, HelpActive)

	case len(seq)%2 == 1 && len(seq) > 1:
		prefix := seq[:len(seq)-1]
		prefixSeg := s.scheme.Segment(prefix)
		if scheme.IsAllComplete(prefix, prefixSeg) {
			s.boundary = len(seq) - 1
			s.useHelp(seq, HelpPending)
			return
		}
		s.state = Composing
		s.candidates = s.dict.LookupSeries(seq, s.seg)

	default:
		s.state = Composing
		s.candidates = s.dict.LookupSeries(seq, s.seg)
	}
}

// useHelp splits seq at the boundary and runs the help-code lookup.
func (s *Session) useHelp(seq string, state State) {
	s.pure = seq[:s.boundary]
	s.pureSeg = s.scheme.Segment(s.pure)
	s.helpCodes = seq[s.boundary:]
	s.state = state
	s.candidates = s.dict.LookupWithHelpCodes(s.pure, s.pureSeg, seq, s.helpCodes)
}

// Reset returns the session to Idle and forgets the raw keys. Dictionary caches are untouched.
func (s *Session) Reset() {
	s.history.clear()
	s.seq = s.seq[:0]
	s.seqWithCase = s.seqWithCase[:0]
	s.pure = ""
	s.seg = ""
	s.pureSeg = ""
	s.helpCodes = ""
	s.boundary = 0
	s.state = Idle
	s.candidates = nil
}

// State returns the composition state.
func (s *Session) State() State { return s.state }

// PinyinSequence returns the typed letters, lowercased.
func (s *Session) PinyinSequence() string { return string(s.seq) }

// PinyinSequenceWithCase returns the typed letters as typed.
func (s *Session) PinyinSequenceWithCase() string { return string(s.seqWithCase) }

// PurePinyinSequence returns the typed letters without the trailing help codes.
func (s *Session) PurePinyinSequence() string { return s.pure }

// Segmentation returns the segmentation of the whole typed sequence.
func (s *Session) Segmentation() string { return s.seg }

// PureSegmentation returns the segmentation the candidates were looked up with.
func (s *Session) PureSegmentation() string { return s.pureSeg }

// SegmentationWithCase returns Segmentation with every letter in the case it was typed in.
func (s *Session) SegmentationWithCase() string {
	var b strings.Builder
	b.Grow(len(s.seg))
	i := 0
	for j := 0; j < len(s.seg); j++ {
		if s.seg[j] == scheme.Separator {
			b.WriteByte(scheme.Separator)
			continue
		}
		b.WriteByte(s.seqWithCase[i])
		i++
	}
	return b.String()
}

// HelpCodes returns the trailing help codes, if any.
func (s *Session) HelpCodes() string { return s.helpCodes }

// HelpBoundary returns the index where help codes begin, or 0 outside help mode.
func (s *Session) HelpBoundary() int { return s.boundary }

// InHelpMode reports whether candidates are filtered by help codes.
func (s *Session) InHelpMode() bool { return s.boundary > 0 }

// Candidates returns the current ranked candidates.
func (s *Session) Candidates() []word.Item { return s.candidates }

// Page returns the n-th page of candidates of the given size, or nil past the end.
func (s *Session) Page(n, size int) []word.Item {
	if n < 0 || size <= 0 {
		return nil
	}
	start := n * size
	if start >= len(s.candidates) {
		return nil
	}
	end := min(start+size, len(s.candidates))
	return s.candidates[start:end]
}

// KeyHistory returns the recent raw keys, oldest first.
func (s *Session) KeyHistory() []Key {
	return s.history.keys()
}

// ClearKeyHistory forgets the raw keys.
func (s *Session) ClearKeyHistory() {
	s.history.clear()
}

// UpdateWeight promotes w under the session's current pinyin.
func (s *Session) UpdateWeight(w string) error {
	return s.dict.UpdateWeight(string(s.seq), w)
}
