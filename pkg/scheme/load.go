package scheme

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

//go:embed data/pinyin.txt
var defaultSyllables []byte

// DefaultSyllables returns the embedded full-pinyin syllable set.
func DefaultSyllables() map[string]struct{} {
	set, err := LoadSyllables(bytes.NewReader(defaultSyllables))
	if err != nil {
		// embedded data is always readable
		log.Errorf("Failed to read embedded syllables: %v", err)
	}
	return set
}

// LoadSyllables reads one syllable per line. Whitespace inside a line is dropped.
func LoadSyllables(r io.Reader) (map[string]struct{}, error) {
	set := make(map[string]struct{}, 512)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, scanner.Text())
		if line == "" {
			continue
		}
		set[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return set, fmt.Errorf("failed to read syllables: %w", err)
	}
	return set, nil
}

// LoadHelpCodes reads `character=code` lines. Only the first two letters of a code are kept
// and lines without '=' or with a code shorter than two letters are skipped.
func LoadHelpCodes(r io.Reader) (map[string]string, error) {
	codes := make(map[string]string, 8192)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		han, code, found := strings.Cut(line, "=")
		code = strings.ToLower(strings.TrimSpace(code))
		if !found || han == "" || len(code) < 2 {
			log.Debugf("Skipping malformed help code line %d: %q", lineNo, line)
			continue
		}
		codes[strings.TrimSpace(han)] = code[:2]
	}
	if err := scanner.Err(); err != nil {
		return codes, fmt.Errorf("failed to read help codes: %w", err)
	}
	return codes, nil
}

// LoadFiles builds a Xiaohe scheme from the two configuration files.
// An empty syllablePath selects the embedded list; an empty helpCodePath leaves
// the help-code map empty.
func LoadFiles(syllablePath, helpCodePath string) (*Scheme, error) {
	syllables := DefaultSyllables()
	if syllablePath != "" {
		f, err := os.Open(syllablePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open syllable file %s: %w", syllablePath, err)
		}
		syllables, err = LoadSyllables(f)
		f.Close()
		if err != nil {
			return nil, err
		}
	}

	var helpCodes map[string]string
	if helpCodePath != "" {
		f, err := os.Open(helpCodePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open help code file %s: %w", helpCodePath, err)
		}
		helpCodes, err = LoadHelpCodes(f)
		f.Close()
		if err != nil {
			return nil, err
		}
	}

	log.Debugf("Loaded scheme: %d syllables, %d help codes", len(syllables), len(helpCodes))
	return NewXiaohe(syllables, helpCodes), nil
}
