package identity

// nickname building blocks

var nicknameVerbs = []string{
	"likes", "loves", "saves", "hearts", "digs", "eats", "sells",
}

var nicknamePrefixes = []string{
	"not", "alt", "fake", "robot", "your_favorite", "dire", "geeky",
}

var leet = map[rune]rune{
	'a': '4', 'A': '4',
	'e': '3', 'E': '3',
	'i': '1', 'I': '1',
	'o': '0', 'O': '0',
}

// birth years used by the year-suffixed nickname
const (
	minBirthYear = 1930
	maxBirthYear = 2007
)
