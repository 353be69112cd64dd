package store

import "fmt"

// DefaultOverflowLength is the word length from which all words share one partition per letter.
const DefaultOverflowLength = 4

// Partition names the partition holding words of hanCount characters whose pinyin starts
// with the first letter of pinyin: tbl_<n>_<c>, or tbl_others_<c> from overflow characters on.
func Partition(pinyin string, hanCount, overflow int) string {
	if pinyin == "" {
		return ""
	}
	if overflow > 0 && hanCount >= overflow {
		return fmt.Sprintf("tbl_others_%c", pinyin[0])
	}
	return fmt.Sprintf("tbl_%d_%c", hanCount, pinyin[0])
}
