package stringsutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s != "" {
			result = append(result, s)
		}
	}

	return result
}

// FirstCharToUpper upper-cases the first character and leaves the rest untouched.
// Blank input yields "".
//
//	"jimmy" -> "Jimmy", "JIMMY" -> "JIMMY"
func FirstCharToUpper(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// WordsInSentenceFirstCharToUpper reassembles a sentence word by word.
// A single word goes through FirstCharToUpper; with more than one word each
// word is kept as is, so "101 main street" stays "101 main street".
func WordsInSentenceFirstCharToUpper(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	if !strings.Contains(s, " ") {
		return FirstCharToUpper(s)
	}

	words := strings.Split(s, " ")
	return strings.Join(words, " ")
}
