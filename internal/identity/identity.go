// Package identity generates personal names, nicknames and per-row
// identities from grouped name lists.
//
// Given and family names are always drawn from one NameGroup so a generated
// person never mixes naming traditions.
package identity

import "strings"

// Gender selects the given-name list.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Random Gender = "random"
)

// ParseGender maps free text to a Gender. Anything unrecognised is Random.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male
	case "female", "f":
		return Female
	default:
		return Random
	}
}

// Identity holds one generated persona. Email and Handle are both derived
// from FullName.
type Identity struct {
	FullName string `json:"full_name"`
	Given    string `json:"given"`
	Family   string `json:"family"`
	Reversed string `json:"reversed"`
	Email    string `json:"email"`
	Handle   string `json:"handle"`
	Group    string `json:"group"`
}

// Mailer derives an email address from a full name.
type Mailer interface {
	Email(fullName string) string
}

// SplitName returns the first two whitespace-separated tokens of name.
func SplitName(name string) (given, family string) {
	f := strings.Fields(name)
	if len(f) > 0 {
		given = f[0]
	}
	if len(f) > 1 {
		family = f[1]
	}
	return given, family
}

func joinName(given, family string) string {
	return strings.TrimSpace(given + " " + family)
}

func reverseName(given, family string) string {
	switch {
	case given == "":
		return family
	case family == "":
		return given
	}
	return family + ", " + given
}
