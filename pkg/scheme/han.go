package scheme

import "unicode/utf8"

// CountHan counts the characters of a UTF-8 word.
func CountHan(word string) int {
	return utf8.RuneCountInString(word)
}

// FirstHan returns the first character of word, or "" for an empty word.
func FirstHan(word string) string {
	_, size := utf8.DecodeRuneInString(word)
	return word[:size]
}

// LastHan returns the last character of word, or "" for an empty word.
func LastHan(word string) string {
	_, size := utf8.DecodeLastRuneInString(word)
	return word[len(word)-size:]
}
