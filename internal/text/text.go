// Package text synthesizes social-media-flavoured strings: sentences,
// accounts, domains, emails, hashtags and URLs.
//
// Each function rolls among a fixed set of surface patterns and fills them
// from the vocabulary and the identity generator.
package text

import (
	"strings"

	"github.com/babbaginator/pyDatasetGen/internal/dice"
	"github.com/babbaginator/pyDatasetGen/internal/identity"
	"github.com/babbaginator/pyDatasetGen/internal/vocab"
	"github.com/babbaginator/pyDatasetGen/internal/words"
)

var (
	days = []string{
		"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	}
	dayAdjectives = []string{
		"terrible", "horrible", "terrific", "brilliant", "great", "bad", "awful", "excellent",
	}

	commercialTLDs  = []string{"com", "net", "org"}
	institutionTLDs = []string{"org", "edu", "gov"}

	mailProviders = []string{
		"gmail.com", "hotmail.com", "aol.com", "outlook.com", "yahoo.com",
	}

	accountJoiners = []string{"", "_"}
)

// Synthesizer produces derived text. It is not safe for concurrent use.
type Synthesizer struct {
	vocab *vocab.Store
	ids   *identity.Generator
	dice  *dice.Dice
}

// New creates a synthesizer drawing on v and ids with randomness from d.
func New(v *vocab.Store, ids *identity.Generator, d *dice.Dice) *Synthesizer {
	if v == nil {
		v = vocab.New(nil)
	}
	return &Synthesizer{vocab: v, ids: ids, dice: d}
}

func (s *Synthesizer) word(category string) string {
	return s.vocab.Choose(s.dice, category)
}

// Sentence returns a short post-like line.
func (s *Synthesizer) Sentence() string {
	switch s.dice.Intn(4) {
	case 0:
		return words.Capitalize(s.word(vocab.Nouns)) + " in " +
			words.Capitalize(s.word(vocab.Places)) + ". What " +
			words.Article(s.dice.Pick(dayAdjectives)) + " idea!"
	case 1:
		return "Another " + s.dice.Pick(days) + ". Another " +
			s.word(vocab.Adjectives) + " " + s.word(vocab.Nouns)
	case 2:
		return "Too close for comfort " + s.Account()
	default:
		return s.Account() + " Have you seen this?!"
	}
}

// Account returns an @handle: ASCII only, lower case, underscores for spaces.
func (s *Synthesizer) Account() string {
	var name string
	switch s.dice.Intn(4) {
	case 0:
		name = s.word(vocab.Adjectives) + s.dice.Pick(accountJoiners) + s.word(vocab.Nouns)
	case 1:
		name = s.word(vocab.Adjectives) + s.dice.Pick(accountJoiners) + s.word(vocab.Actors)
	case 2:
		name = s.word(vocab.Nouns) + s.word(vocab.Actors)
	default:
		name = s.ids.Nickname(identity.Random, "")
	}

	name = strings.Join(strings.Fields(words.Fold(name)), "_")
	return "@" + strings.ToLower(name)
}

// Domain returns a host name such as "bravefox.net".
func (s *Synthesizer) Domain() string {
	var d string
	switch s.dice.Intn(9) {
	case 0:
		d = s.word(vocab.Adjectives) + s.word(vocab.Nouns) + "." + s.dice.Pick(commercialTLDs)
	case 1:
		d = s.word(vocab.Adjectives) + s.word(vocab.Actors) + "." + s.dice.Pick(commercialTLDs)
	case 2:
		d = s.ids.Family("") + "." + s.dice.Pick(commercialTLDs)
	case 3:
		d = s.ids.FullName(identity.Random) + "." + s.dice.Pick(commercialTLDs)
	case 4:
		d = s.word(vocab.Nouns) + "." + s.dice.Pick(institutionTLDs)
	case 5:
		d = s.ids.Family("") + "." + s.dice.Pick(institutionTLDs)
	default:
		d = s.word(vocab.Nouns) + "." + s.dice.Pick(commercialTLDs)
	}
	return strings.ToLower(words.Squash(words.Fold(d)))
}

// Email returns an address whose local part is shaped from fullName. An empty
// fullName draws a fresh one. Email satisfies identity.Mailer.
func (s *Synthesizer) Email(fullName string) string {
	var domain string
	if s.dice.Roll(4) == 1 {
		domain = s.Domain()
	} else {
		domain = s.dice.Pick(mailProviders)
	}

	if strings.TrimSpace(fullName) == "" {
		fullName = s.ids.FullName(identity.Random)
	}
	given, family := identity.SplitName(fullName)

	var local string
	switch s.dice.Intn(4) {
	case 0:
		local = given + "." + family
		if family == "" {
			local = given
		}
	case 1:
		local = given + initial(family)
	default:
		local = s.ids.Nickname(identity.Random, fullName)
	}

	addr := words.Fold(local) + "@" + domain
	return strings.ToLower(words.Squash(addr))
}

// Hashtag returns a #tag made of vocabulary words with the spaces removed.
func (s *Synthesizer) Hashtag() string {
	var tag string
	switch s.dice.Intn(7) {
	case 0:
		tag = s.word(vocab.Adjectives) + s.word(vocab.Nouns)
	case 1:
		tag = s.word(vocab.Adjectives) + s.word(vocab.Actors)
	case 2:
		tag = s.word(vocab.Places)
	case 3:
		tag = s.word(vocab.Adjectives) + s.word(vocab.Places)
	case 4:
		tag = s.word(vocab.Adjectives) + s.ids.Family("")
	case 5:
		tag = s.word(vocab.Adjectives) + words.Plural(s.word(vocab.Nouns))
	default:
		tag = s.word(vocab.Nouns)
	}
	return "#" + words.Squash(tag)
}

// URL returns "www.<domain>" with an occasional page path.
func (s *Synthesizer) URL() string {
	u := "www." + s.Domain()
	switch s.dice.Intn(7) {
	case 0:
		u += "/" + s.word(vocab.Nouns) + "/" + s.word(vocab.Nouns) + ".html"
	case 1:
		u += "/" + s.word(vocab.Places) + ".html"
	case 2:
		u += "/" + s.word(vocab.Adjectives) + s.word(vocab.Nouns) + ".html"
	}
	return words.Squash(u)
}

func initial(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
