package store

import (
	"bytes"
	"fmt"

	"github.com/bastiangx/shuangpin/pkg/word"
	"github.com/vmihailenco/msgpack/v5"
)

// Record is one dictionary row.
type Record struct {
	Key    string `msgpack:"k"`
	Abbr   string `msgpack:"j"`
	Word   string `msgpack:"v"`
	Weight int    `msgpack:"w"`
}

// Item converts the record into a candidate.
func (r Record) Item() word.Item {
	return word.Item{Key: r.Key, Word: r.Word, Weight: r.Weight}
}

const (
	keyPrefix  = 'k'
	abbrPrefix = 'j'
	sep        = 0x00
	maxByte    = 0xff
)

// rowKey is k 0x00 <key> 0x00 <word>.
func rowKey(key, value string) []byte {
	b := make([]byte, 0, 3+len(key)+len(value))
	b = append(b, keyPrefix, sep)
	b = append(b, key...)
	b = append(b, sep)
	return append(b, value...)
}

// abbrKey is j 0x00 <abbr> 0x00 <key> 0x00 <word>.
func abbrKey(abbr, key, value string) []byte {
	b := make([]byte, 0, 4+len(abbr)+len(key)+len(value))
	b = append(b, abbrPrefix, sep)
	b = append(b, abbr...)
	b = append(b, sep)
	b = append(b, key...)
	b = append(b, sep)
	return append(b, value...)
}

// parseAbbrKey recovers key and word from an abbreviation index entry.
func parseAbbrKey(k []byte) (key, value string, err error) {
	parts := bytes.SplitN(k, []byte{sep}, 4)
	if len(parts) != 4 || len(parts[0]) != 1 || parts[0][0] != abbrPrefix {
		return "", "", fmt.Errorf("malformed abbreviation entry %q", k)
	}
	return string(parts[2]), string(parts[3]), nil
}

// bounds returns the scan range covering every entry that starts with prefix.
func bounds(prefix []byte) (from, to []byte) {
	to = make([]byte, 0, len(prefix)+1)
	to = append(to, prefix...)
	return prefix, append(to, maxByte)
}

func keyGroupPrefix(key string) []byte {
	b := make([]byte, 0, 3+len(key))
	b = append(b, keyPrefix, sep)
	b = append(b, key...)
	return append(b, sep)
}

func abbrGroupPrefix(abbr string) []byte {
	b := make([]byte, 0, 3+len(abbr))
	b = append(b, abbrPrefix, sep)
	b = append(b, abbr...)
	return append(b, sep)
}

func encodeRecord(r Record) ([]byte, error) {
	return msgpack.Marshal(&r)
}

func decodeRecord(v []byte) (Record, error) {
	var r Record
	err := msgpack.Unmarshal(v, &r)
	return r, err
}
