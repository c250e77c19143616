// Package words holds the small English and text-shaping rules the
// synthesizers share.
package words

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var unchangedPlurals = map[string]bool{
	"fish":    true,
	"catfish": true,
	"deer":    true,
	"moose":   true,
	"sheep":   true,
}

var irregularPlurals = map[string]string{
	"mouse": "mice",
	"louse": "lice",
	"thief": "thieves",
	"goose": "geese",
	"ox":    "oxen",
}

// Plural returns the English plural of a noun.
func Plural(word string) string {
	if word == "" {
		return ""
	}

	lower := strings.ToLower(word)
	if unchangedPlurals[lower] {
		return word
	}
	if p, ok := irregularPlurals[lower]; ok {
		if startsUpper(word) {
			return Capitalize(p)
		}
		return p
	}

	switch {
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "ss"):
		return word + "es"
	default:
		return word + "s"
	}
}

// Capitalize upper-cases the first letter and leaves the rest alone, so
// "new York" becomes "New York" rather than "New york".
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Article prefixes word with "a" or "an".
func Article(word string) string {
	lower := strings.ToLower(word)
	if lower == "hour" || (lower != "" && isVowel(lower[0])) {
		return "an " + word
	}
	return "a " + word
}

// Squash removes all whitespace.
func Squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
