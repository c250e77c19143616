// Package vocab holds the named word lists the synthesizers draw from.
package vocab

import (
	"slices"
	"sort"

	"github.com/babbaginator/pyDatasetGen/internal/dice"
	"github.com/babbaginator/pyDatasetGen/internal/linecfg"
)

// well-known categories
const (
	Nouns      = "nouns"
	Adjectives = "adjectives"
	Actors     = "actors"
	Places     = "places"
)

// Store maps category names to word lists. It is read-only after
// construction and safe to share between goroutines.
type Store struct {
	lists map[string][]string
}

// New builds a store from in-memory lists. The lists are copied.
func New(lists map[string][]string) *Store {
	s := &Store{lists: make(map[string][]string, len(lists))}
	for k, v := range lists {
		s.lists[k] = slices.Clone(v)
	}
	return s
}

// Load reads a vocabulary file. On a malformed line it returns the lists read
// so far along with a *linecfg.LoadError; the store is never nil.
func Load(fsys linecfg.FileReader, path string) (*Store, error) {
	entries, err := linecfg.Read(fsys, path)

	s := &Store{lists: make(map[string][]string, len(entries))}
	for _, e := range entries {
		s.lists[e.Key] = slices.Clone(e.Values())
	}
	return s, err
}

// Get returns a copy of the list for category, empty when it is undefined.
func (s *Store) Get(category string) []string {
	if s == nil {
		return []string{}
	}
	l, ok := s.lists[category]
	if !ok {
		return []string{}
	}
	return slices.Clone(l)
}

// Has reports whether category is defined.
func (s *Store) Has(category string) bool {
	if s == nil {
		return false
	}
	_, ok := s.lists[category]
	return ok
}

// Choose returns a random word from category, or "" when the list is empty
// or undefined.
func (s *Store) Choose(d *dice.Dice, category string) string {
	if s == nil {
		return ""
	}
	return d.Pick(s.lists[category])
}

// Categories returns the defined category names in sorted order.
func (s *Store) Categories() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.lists))
	for k := range s.lists {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
