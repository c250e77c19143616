package schema

import (
	"strconv"

	"github.com/babbaginator/pyDatasetGen/internal/dice"
	"github.com/babbaginator/pyDatasetGen/internal/identity"
	"github.com/babbaginator/pyDatasetGen/internal/numeric"
	"github.com/babbaginator/pyDatasetGen/internal/text"
	"github.com/babbaginator/pyDatasetGen/internal/vocab"
	"github.com/google/uuid"
)

// row is the per-record synthesis context. Everything in it is created fresh
// for one record and never shared.
type row struct {
	dice   *dice.Dice
	vocab  *vocab.Store
	ids    *identity.Generator
	text   *text.Synthesizer
	person identity.Identity
}

func newRow(names *identity.Names, v *vocab.Store, d *dice.Dice) *row {
	ids := identity.New(names, v, d)
	txt := text.New(v, ids, d)
	return &row{
		dice:   d,
		vocab:  v,
		ids:    ids,
		text:   txt,
		person: ids.Generate(txt),
	}
}

// DirectiveFunc computes a value. Returning false makes the interpreter pass
// the raw field text through instead.
type DirectiveFunc func(r *row, params []string) (string, bool)

func constant(f func(r *row) string) DirectiveFunc {
	return func(r *row, _ []string) (string, bool) { return f(r), true }
}

func defaultDirectives() map[string]DirectiveFunc {
	return map[string]DirectiveFunc{
		"sentence": constant(func(r *row) string { return r.text.Sentence() }),
		"url":      constant(func(r *row) string { return r.text.URL() }),
		"hashtag":  constant(func(r *row) string { return r.text.Hashtag() }),
		"account":  constant(func(r *row) string { return r.text.Account() }),
		"domain":   constant(func(r *row) string { return r.text.Domain() }),

		"email":        constant(func(r *row) string { return r.person.Email }),
		"handle":       constant(func(r *row) string { return r.person.Handle }),
		"fullname":     constant(func(r *row) string { return r.person.FullName }),
		"fullname_rev": constant(func(r *row) string { return r.person.Reversed }),
		"firstname":    constant(func(r *row) string { return r.person.Given }),
		"lastname":     constant(func(r *row) string { return r.person.Family }),

		"int":      intDirective,
		"date":     dateDirective,
		"nickname": nicknameDirective,
		"uuid":     uuidDirective,
		"word":     wordDirective,
	}
}

// int(min,max,median) or int(min,max)
func intDirective(r *row, params []string) (string, bool) {
	if len(params) != 2 && len(params) != 3 {
		return "", false
	}
	nums := make([]int, len(params))
	for i, p := range params {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", false
		}
		nums[i] = n
	}

	lo, hi := nums[0], nums[1]
	median := dice.Mid(lo, hi)
	if len(nums) == 3 {
		median = nums[2]
	}
	return strconv.Itoa(numeric.Number(r.dice, lo, median, hi)), true
}

// date(start,end) or date
func dateDirective(r *row, params []string) (string, bool) {
	start, end := numeric.DefaultStart, numeric.DefaultEnd
	switch len(params) {
	case 0:
	case 2:
		var err error
		if start, err = numeric.ParseDate(params[0]); err != nil {
			return "", false
		}
		if end, err = numeric.ParseDate(params[1]); err != nil {
			return "", false
		}
	default:
		return "", false
	}
	return numeric.FormatDate(numeric.Date(r.dice, start, end)), true
}

// nickname or nickname(gender): a fresh nickname, unrelated to the row's person
func nicknameDirective(r *row, params []string) (string, bool) {
	gender := identity.Random
	if len(params) > 0 {
		gender = identity.ParseGender(params[0])
	}
	return r.ids.Nickname(gender, ""), true
}

func uuidDirective(r *row, _ []string) (string, bool) {
	id, err := uuid.NewRandomFromReader(r.dice)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// word(category)
func wordDirective(r *row, params []string) (string, bool) {
	if len(params) != 1 {
		return "", false
	}
	return r.vocab.Choose(r.dice, params[0]), true
}
