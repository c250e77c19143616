// Package config loads a run profile: which vocabulary, names and schema to
// read, how many rows to generate, and where and how to write them.
//
// A profile is a YAML file; every key can also come from a DATASETGEN_*
// environment variable. Flags given on the command line override both.
package config

import (
	"errors"
	"fmt"

	"github.com/babbaginator/pyDatasetGen/internal/export"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// limits on a profile
const (
	DefaultRows = 100
	MaxRows     = 1_000_000
	MaxWorkers  = 64
)

// Profile is one generation run's settings. Empty paths mean the embedded
// defaults; Seed 0 means a random seed.
type Profile struct {
	Vocab  string `yaml:"vocab" env:"DATASETGEN_VOCAB"`
	Names  string `yaml:"names" env:"DATASETGEN_NAMES"`
	Schema string `yaml:"schema" env:"DATASETGEN_SCHEMA"`

	Rows    int    `yaml:"rows" env:"DATASETGEN_ROWS" env-default:"100" validate:"min=1,max=1000000"`
	Seed    uint64 `yaml:"seed" env:"DATASETGEN_SEED"`
	Workers int    `yaml:"workers" env:"DATASETGEN_WORKERS" validate:"min=0,max=64"`

	Output string `yaml:"output" env:"DATASETGEN_OUTPUT"`
	Format string `yaml:"format" env:"DATASETGEN_FORMAT" validate:"omitempty,oneof=csv json yaml sqlite sealed"`
	Table  string `yaml:"table" env:"DATASETGEN_TABLE" env-default:"dataset" validate:"required,printascii,excludesall=\""`

	// never read from a profile file
	Passphrase string `yaml:"-" env:"DATASETGEN_PASSPHRASE"`
}

// Load reads the profile at path, or the environment alone when path is
// empty, and validates it.
func Load(path string) (Profile, error) {
	var p Profile

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(&p)
	} else {
		err = cleanenv.ReadConfig(path, &p)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("load profile %s: %w", path, err)
	}
	return p, nil
}

// Default returns the profile used when nothing is configured.
func Default() Profile {
	return Profile{Rows: DefaultRows, Table: export.DefaultTable}
}

var validate = validator.New()

// Validate checks field ranges and the format name.
func (p Profile) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, len(verrs))
	for i, fe := range verrs {
		errs[i] = fmt.Errorf("%s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
	}
	return errors.Join(errs...)
}

// OutputFormat settles the export format: the explicit Format, else the
// output file's extension, else CSV.
func (p Profile) OutputFormat() (export.Format, error) {
	if p.Format != "" {
		return export.ParseFormat(p.Format)
	}
	if p.Output == "" || p.Output == "-" {
		return export.CSV, nil
	}
	return export.FormatFromPath(p.Output)
}
