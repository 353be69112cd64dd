package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bastiangx/shuangpin/pkg/store"
	"github.com/charmbracelet/log"
)

// Import bulk-loads `pinyin word [weight]` lines, replacing stored weights of words already
// present. Blank lines, # comments and invalid entries are skipped. It returns the number of
// words written.
func (d *Dictionary) Import(r io.Reader) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	scanner := bufio.NewScanner(r)
	count := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			log.Debugf("Skipping malformed line %d: %q", lineNo, line)
			continue
		}
		pinyin, w := strings.ToLower(fields[0]), fields[1]
		weight := d.opts.DefaultWeight
		if len(fields) > 2 {
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				log.Debugf("Skipping line %d with bad weight %q", lineNo, fields[2])
				continue
			}
			weight = n
		}
		abbr, err := validate(pinyin, w)
		if err != nil {
			log.Debugf("Skipping line %d: %v", lineNo, err)
			continue
		}
		rec := store.Record{Key: pinyin, Abbr: abbr, Word: w, Weight: weight}
		if err := d.table.Insert(d.partition(pinyin, len(abbr)), rec); err != nil {
			if count > 0 {
				d.invalidate()
			}
			return count, fmt.Errorf("failed to import line %d: %w", lineNo, err)
		}
		count++
	}
	if count > 0 {
		d.invalidate()
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("failed to read dictionary: %w", err)
	}
	return count, nil
}

// ImportFile imports a text dictionary from disk.
func (d *Dictionary) ImportFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer f.Close()

	n, err := d.Import(f)
	if err != nil {
		return n, err
	}
	log.Debugf("Imported %d words from %s", n, path)
	return n, nil
}
