// Package word defines the candidate record shared by the dictionary, the help-code filter and sessions.
package word

import "github.com/bastiangx/shuangpin/pkg/scheme"

// Item is one candidate: the pinyin key it matched, its Han characters and its weight.
// Items are values and are never changed after they are returned; re-ranking builds new lists.
type Item struct {
	Key    string `msgpack:"k"`
	Word   string `msgpack:"w"`
	Weight int    `msgpack:"n"`
}

// HanCount returns the number of characters in the item's word.
func (it Item) HanCount() int {
	return scheme.CountHan(it.Word)
}

// Words extracts the word strings from a candidate list.
func Words(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Word
	}
	return out
}
