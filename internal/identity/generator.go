package identity

import (
	"strconv"
	"strings"

	"github.com/babbaginator/pyDatasetGen/internal/dice"
	"github.com/babbaginator/pyDatasetGen/internal/vocab"
	"github.com/babbaginator/pyDatasetGen/internal/words"
)

// number of nickname shapes Nickname chooses between
const nicknamePatterns = 10

// Generator draws names from a Names set. Lookups that cannot be satisfied,
// such as a group without female given names, yield "" rather than an error.
type Generator struct {
	names *Names
	vocab *vocab.Store
	dice  *dice.Dice
}

// New creates a generator. A nil names or vocab behaves as empty.
func New(names *Names, v *vocab.Store, d *dice.Dice) *Generator {
	if names == nil {
		names = NewNames()
	}
	if v == nil {
		v = vocab.New(nil)
	}
	return &Generator{names: names, vocab: v, dice: d}
}

// PickGroup returns the group named by preferred (label or alias), or a
// uniformly chosen group when preferred is unknown. It reports false only
// when there are no groups at all.
func (g *Generator) PickGroup(preferred string) (NameGroup, bool) {
	if grp, ok := g.names.Group(preferred); ok {
		return grp, true
	}
	if g.names.Len() == 0 {
		return NameGroup{}, false
	}
	label := g.names.order[g.dice.Intn(g.names.Len())]
	return g.names.groups[label], true
}

// Given returns a given name for gender from group. Random gender is settled
// by a coin flip before the lookup, within the same group.
func (g *Generator) Given(gender Gender, group string) string {
	grp, ok := g.PickGroup(group)
	if !ok {
		return ""
	}
	return g.givenFrom(grp, gender)
}

// Family returns a family name from group.
func (g *Generator) Family(group string) string {
	grp, ok := g.PickGroup(group)
	if !ok {
		return ""
	}
	return g.dice.Pick(grp.Family)
}

// Name returns a given and family name drawn from one group.
func (g *Generator) Name(gender Gender) (given, family string) {
	given, family, _ = g.name(gender)
	return given, family
}

// FullName returns "Given Family" with both parts from one group.
func (g *Generator) FullName(gender Gender) string {
	return joinName(g.Name(gender))
}

// Nickname derives an account-style nickname from fullName, generating a
// fresh full name when fullName is empty. The result may contain non-ASCII
// letters; fold it before using it where only ASCII is allowed.
func (g *Generator) Nickname(gender Gender, fullName string) string {
	if strings.TrimSpace(fullName) == "" {
		fullName = g.FullName(gender)
	}
	given, family := SplitName(fullName)
	if given == "" {
		return ""
	}

	var nick string
	switch g.dice.Intn(nicknamePatterns) {
	case 0:
		nick = g.vocab.Choose(g.dice, vocab.Adjectives) + given
	case 1:
		nick = given + strconv.Itoa(g.dice.Roll(100))
	case 2:
		nick = given + strconv.Itoa(g.dice.Between(minBirthYear, maxBirthYear))
	case 3:
		nick = underscore(given, family)
	case 4:
		nick = underscore(given, "the", g.vocab.Choose(g.dice, vocab.Nouns))
	case 5:
		noun := words.Plural(g.vocab.Choose(g.dice, vocab.Nouns))
		nick = underscore(given, g.dice.Pick(nicknameVerbs), noun)
	case 6:
		nick = underscore("the", g.vocab.Choose(g.dice, vocab.Adjectives), given)
	case 7:
		nick = g.dice.Pick(nicknamePrefixes) + given
	case 8:
		nick = "xX" + toLeet(given) + "Xx"
	default:
		nick = given + initial(family) + strconv.Itoa(g.dice.Roll(100))
	}

	return strings.Join(strings.Fields(nick), "_")
}

// Generate builds a fresh identity. Email and Handle are derived from the
// same full name; Email is left empty when m is nil.
func (g *Generator) Generate(m Mailer) Identity {
	given, family, group := g.name(Random)
	full := joinName(given, family)

	id := Identity{
		FullName: full,
		Given:    given,
		Family:   family,
		Reversed: reverseName(given, family),
		Group:    group,
	}
	if full == "" {
		return id
	}

	id.Handle = words.Fold(g.Nickname(Random, full))
	if m != nil {
		id.Email = m.Email(full)
	}
	return id
}

func (g *Generator) name(gender Gender) (given, family, group string) {
	grp, ok := g.PickGroup("")
	if !ok {
		return "", "", ""
	}
	return g.givenFrom(grp, gender), g.dice.Pick(grp.Family), grp.Label
}

func (g *Generator) givenFrom(grp NameGroup, gender Gender) string {
	if gender != Male && gender != Female {
		gender = Female
		if g.dice.Coin() {
			gender = Male
		}
	}
	return g.dice.Pick(grp.given(gender))
}

// underscore joins the non-empty parts with "_".
func underscore(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "_")
}

func initial(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func toLeet(s string) string {
	return strings.Map(func(r rune) rune {
		if l, ok := leet[r]; ok {
			return l
		}
		return r
	}, s)
}
