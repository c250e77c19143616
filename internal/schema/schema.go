// Package schema interprets a dataset schema and generates records from it.
//
// A schema file maps column names to value specs:
//
//	id=[1,2,3]
//	created=?date(2020-01-01,2020-12-31)
//	who=?fullname
//	source=import
//
// Each generated record gets a fresh identity, so name, email and handle
// columns in one row agree with each other.
package schema

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/babbaginator/pyDatasetGen/internal/dice"
	"github.com/babbaginator/pyDatasetGen/internal/identity"
	"github.com/babbaginator/pyDatasetGen/internal/linecfg"
	"github.com/babbaginator/pyDatasetGen/internal/vocab"
)

// State is the interpreter's lifecycle position.
type State int

const (
	Idle State = iota
	Loaded
	Generating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loaded:
		return "loaded"
	case Generating:
		return "generating"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Interpreter owns a schema and the read-only tables it draws from.
type Interpreter struct {
	names      *identity.Names
	vocab      *vocab.Store
	dice       *dice.Dice
	log        *slog.Logger
	directives map[string]DirectiveFunc

	fields []FieldSpec
	state  State
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithSeed makes generation reproducible.
func WithSeed(seed uint64) Option {
	return func(in *Interpreter) { in.dice = dice.New(seed) }
}

// WithDice sets the randomness source.
func WithDice(d *dice.Dice) Option {
	return func(in *Interpreter) { in.dice = d }
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) { in.log = l }
}

// New creates an interpreter with no schema loaded.
func New(names *identity.Names, v *vocab.Store, opts ...Option) *Interpreter {
	in := &Interpreter{
		names:      names,
		vocab:      v,
		directives: defaultDirectives(),
		state:      Idle,
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.dice == nil {
		in.dice = dice.Random()
	}
	if in.log == nil {
		in.log = slog.Default()
	}
	return in
}

// Load reads a schema file. On any failure the error is logged and returned
// and the previously loaded schema, if any, stays in place.
func (in *Interpreter) Load(fsys linecfg.FileReader, path string) error {
	entries, err := linecfg.Read(fsys, path)
	if err != nil {
		in.log.Error("schema not loaded", "path", path, "err", err)
		return err
	}

	in.SetFields(fieldsFrom(entries))
	in.log.Debug("schema loaded", "path", path, "fields", len(in.fields))
	return nil
}

// SetFields replaces the schema with fields.
func (in *Interpreter) SetFields(fields []FieldSpec) {
	in.fields = slices.Clone(fields)
	in.state = Loaded
}

// fieldsFrom builds specs in declaration order. A repeated key keeps its
// first position and takes the later value.
func fieldsFrom(entries []linecfg.Entry) []FieldSpec {
	fields := make([]FieldSpec, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		spec := ParseField(e.Key, e.Value)
		if i, dup := index[e.Key]; dup {
			fields[i] = spec
			continue
		}
		index[e.Key] = len(fields)
		fields = append(fields, spec)
	}
	return fields
}

// Fields returns the loaded field specs.
func (in *Interpreter) Fields() []FieldSpec {
	return slices.Clone(in.fields)
}

// Keys returns the column names in schema order.
func (in *Interpreter) Keys() []string {
	keys := make([]string, len(in.fields))
	for i, f := range in.fields {
		keys[i] = f.Name
	}
	return keys
}

// State reports where the interpreter is in its lifecycle.
func (in *Interpreter) State() State {
	return in.state
}

// Directives lists the recognised directive names.
func (in *Interpreter) Directives() []string {
	names := make([]string, 0, len(in.directives))
	for n := range in.directives {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
