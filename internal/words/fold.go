package words

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letters that do not decompose into base + combining mark
var specialFolds = strings.NewReplacer(
	"ß", "ss", "ẞ", "SS",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"þ", "th", "Þ", "Th",
	"ð", "d", "Ð", "D",
	"ø", "o", "Ø", "O",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ħ", "h", "Ħ", "H",
	"ı", "i",
)

func nonASCII(r rune) bool { return r > unicode.MaxASCII }

// Fold transliterates s to plain ASCII: accents are stripped, a few
// standalone letters are spelled out, and anything left without an ASCII
// equivalent is dropped.
func Fold(s string) string {
	s = specialFolds.Replace(s)

	// transformers are stateful, so build one per call
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(nonASCII)),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if nonASCII(r) {
				return -1
			}
			return r
		}, s)
	}
	return out
}

// IsASCII reports whether s holds only ASCII code points.
func IsASCII(s string) bool {
	for _, r := range s {
		if nonASCII(r) {
			return false
		}
	}
	return true
}
