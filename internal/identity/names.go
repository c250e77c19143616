package identity

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/babbaginator/pyDatasetGen/internal/linecfg"
)

// key naming the group labels in a names file
const groupsKey = "name_groups"

// ErrNoGroups is returned when a names source defines no groups.
var ErrNoGroups = errors.New("no name groups defined")

// NameGroup is one naming tradition. Members lists aliases that may be used
// to request the group by something other than its label.
type NameGroup struct {
	Label       string
	MaleGiven   []string
	FemaleGiven []string
	Family      []string
	Members     []string
}

func (g NameGroup) given(gender Gender) []string {
	if gender == Female {
		return g.FemaleGiven
	}
	return g.MaleGiven
}

// Names is the read-only set of known groups.
type Names struct {
	order  []string
	groups map[string]NameGroup
	alias  map[string]string
}

// NewNames builds a set from groups, in the order given.
func NewNames(groups ...NameGroup) *Names {
	n := &Names{
		groups: make(map[string]NameGroup, len(groups)),
		alias:  make(map[string]string),
	}
	for _, g := range groups {
		if _, dup := n.groups[g.Label]; !dup {
			n.order = append(n.order, g.Label)
		}
		n.groups[g.Label] = g
		for _, m := range g.Members {
			n.alias[strings.ToLower(m)] = g.Label
		}
	}
	return n
}

// LoadNames reads a names file. It requires a name_groups list; each group
// then reads <Group>MaleGiven, <Group>FemaleGiven, <Group>Family and the
// optional <Group>Members. Groups read before a malformed line are kept.
func LoadNames(fsys linecfg.FileReader, path string) (*Names, error) {
	entries, err := linecfg.Read(fsys, path)

	lists := make(map[string][]string, len(entries))
	for _, e := range entries {
		lists[e.Key] = e.Values()
	}

	labels, ok := lists[groupsKey]
	if !ok || len(labels) == 0 {
		if err == nil {
			err = fmt.Errorf("load names %s: %w", path, ErrNoGroups)
		}
		return NewNames(), err
	}

	groups := make([]NameGroup, 0, len(labels))
	for _, label := range labels {
		if label == "" {
			continue
		}
		groups = append(groups, NameGroup{
			Label:       label,
			MaleGiven:   slices.Clone(lists[label+"MaleGiven"]),
			FemaleGiven: slices.Clone(lists[label+"FemaleGiven"]),
			Family:      slices.Clone(lists[label+"Family"]),
			Members:     slices.Clone(lists[label+"Members"]),
		})
	}

	return NewNames(groups...), err
}

// Labels returns group labels in declaration order.
func (n *Names) Labels() []string {
	return slices.Clone(n.order)
}

// Group looks up a group by label or member alias.
func (n *Names) Group(name string) (NameGroup, bool) {
	if g, ok := n.groups[name]; ok {
		return g, true
	}
	if label, ok := n.alias[strings.ToLower(name)]; ok {
		return n.groups[label], true
	}
	return NameGroup{}, false
}

// Len returns the number of groups.
func (n *Names) Len() int {
	return len(n.order)
}

// Validate reports every group that is missing one of its name lists.
func (n *Names) Validate() error {
	if n.Len() == 0 {
		return ErrNoGroups
	}

	var errs []error
	for _, label := range n.order {
		g := n.groups[label]
		if len(g.MaleGiven) == 0 {
			errs = append(errs, fmt.Errorf("group %q: no male given names", label))
		}
		if len(g.FemaleGiven) == 0 {
			errs = append(errs, fmt.Errorf("group %q: no female given names", label))
		}
		if len(g.Family) == 0 {
			errs = append(errs, fmt.Errorf("group %q: no family names", label))
		}
	}
	return errors.Join(errs...)
}
