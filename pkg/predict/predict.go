// Package predict provides the phrase-prediction fallback used when the dictionary has no
// exact match for a full sequence.
package predict

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Oracle guesses the best phrase for a separated full-pinyin string such as "ni'hao'shi'jie".
// An empty result means no guess.
type Oracle interface {
	Predict(quanpin string) string
}

// Func adapts a function to Oracle.
type Func func(quanpin string) string

// Predict calls f.
func (f Func) Predict(quanpin string) string {
	return f(quanpin)
}

// Nop never predicts anything.
var Nop Oracle = Func(func(string) string { return "" })

const syllableSep = "'"

// PhraseTable predicts by covering the input with the longest known phrases, left to right.
// Keys are stored with a trailing separator so a prefix match always ends on a syllable boundary.
type PhraseTable struct {
	trie    *patricia.Trie
	phrases int
	mu      sync.RWMutex
}

// NewPhraseTable creates an empty table.
func NewPhraseTable() *PhraseTable {
	return &PhraseTable{trie: patricia.NewTrie()}
}

// Add maps a separated full-pinyin string to a phrase. Later additions replace earlier ones.
func (pt *PhraseTable) Add(quanpin, phrase string) {
	quanpin = strings.Trim(strings.ToLower(quanpin), syllableSep)
	if quanpin == "" || phrase == "" {
		return
	}
	pt.mu.Lock()
	defer pt.mu.Unlock()
	key := patricia.Prefix(quanpin + syllableSep)
	if pt.trie.Insert(key, phrase) {
		pt.phrases++
	} else {
		pt.trie.Set(key, phrase)
	}
}

// Len returns the number of phrases.
func (pt *PhraseTable) Len() int {
	pt.mu.RLock()
	defer pt.mu.RUnlock()
	return pt.phrases
}

// Predict returns the concatenation of the longest phrases covering quanpin, or "" when some
// syllable cannot be covered.
func (pt *PhraseTable) Predict(quanpin string) string {
	rest := strings.Trim(quanpin, syllableSep)
	if rest == "" {
		return ""
	}
	rest += syllableSep

	pt.mu.RLock()
	defer pt.mu.RUnlock()

	var b strings.Builder
	for rest != "" {
		var matchLen int
		var phrase string
		err := pt.trie.VisitPrefixes(patricia.Prefix(rest), func(p patricia.Prefix, item patricia.Item) error {
			if len(p) > matchLen {
				matchLen = len(p)
				phrase = item.(string)
			}
			return nil
		})
		if err != nil {
			log.Errorf("Error visiting phrase trie: %v", err)
			return ""
		}
		if matchLen == 0 {
			log.Debugf("No phrase covers %q", rest)
			return ""
		}
		b.WriteString(phrase)
		rest = rest[matchLen:]
	}
	return b.String()
}

// Load reads `pinyin phrase` lines, pinyin separated by ' (e.g. "ni'hao 你好").
// Blank lines and lines starting with # are ignored.
func (pt *PhraseTable) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			log.Debugf("Skipping malformed phrase line %d: %q", lineNo, line)
			continue
		}
		pt.Add(fields[0], fields[1])
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read phrases: %w", err)
	}
	return nil
}

// LoadFile builds a PhraseTable from a file.
func LoadFile(path string) (*PhraseTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open phrase file %s: %w", path, err)
	}
	defer f.Close()

	pt := NewPhraseTable()
	if err := pt.Load(f); err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d phrases from %s", pt.Len(), path)
	return pt, nil
}
