package schema

import (
	"context"
	"fmt"

	"github.com/babbaginator/pyDatasetGen/internal/dice"
	"golang.org/x/sync/errgroup"
)

// GenerateRow produces one record from a fresh identity.
func (in *Interpreter) GenerateRow() Record {
	in.state = Generating
	defer func() { in.state = Idle }()

	return in.build(in.dice.Child())
}

// Generate produces count records, each with its own identity. Every record
// draws from a child of the interpreter's dice, so a seeded interpreter
// always yields the same dataset.
func (in *Interpreter) Generate(count int) Dataset {
	in.state = Generating
	defer func() { in.state = Idle }()

	count = max(count, 0)
	ds := Dataset{Columns: in.Keys(), Records: make([]Record, count)}
	for i := range count {
		ds.Records[i] = in.build(in.dice.Child())
	}
	return ds
}

// GenerateParallel is Generate spread over workers goroutines. For a given
// seed it returns exactly what Generate would. It stops early when ctx is
// cancelled.
func (in *Interpreter) GenerateParallel(ctx context.Context, count, workers int) (Dataset, error) {
	in.state = Generating
	defer func() { in.state = Idle }()

	count = max(count, 0)
	workers = max(workers, 1)

	// draw per-row dice up front so output does not depend on scheduling
	rolls := make([]*dice.Dice, count)
	for i := range rolls {
		rolls[i] = in.dice.Child()
	}

	ds := Dataset{Columns: in.Keys(), Records: make([]Record, count)}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range count {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ds.Records[i] = in.build(rolls[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Dataset{}, fmt.Errorf("generate: %w", err)
	}
	return ds, nil
}

// Eval evaluates a single value spec with a fresh identity.
func (in *Interpreter) Eval(raw string) string {
	f := ParseField("", raw)
	return in.value(newRow(in.names, in.vocab, in.dice.Child()), f)
}

func (in *Interpreter) build(d *dice.Dice) Record {
	r := newRow(in.names, in.vocab, d)
	rec := make(Record, len(in.fields))
	for i, f := range in.fields {
		rec[i] = Field{Name: f.Name, Value: in.value(r, f)}
	}
	return rec
}

func (in *Interpreter) value(r *row, f FieldSpec) string {
	switch f.Kind {
	case Choice:
		return r.dice.Pick(f.Choices)
	case Directive:
		fn, ok := in.directives[f.Directive]
		if !ok {
			return f.Raw
		}
		v, ok := fn(r, f.Params)
		if !ok {
			in.log.Debug("directive parameters not usable", "field", f.Name, "spec", f.Raw)
			return f.Raw
		}
		return v
	default:
		return f.Raw
	}
}
