package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/babbaginator/pyDatasetGen/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
schema: people.txt
rows: 250
seed: 9
format: json
output: out.json
workers: 4
`)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "people.txt", p.Schema)
	assert.Equal(t, 250, p.Rows)
	assert.Equal(t, uint64(9), p.Seed)
	assert.Equal(t, 4, p.Workers)
	assert.Equal(t, "dataset", p.Table, "default table")
}

func TestLoadDefaults(t *testing.T) {
	p, err := Load(writeProfile(t, "schema: s.txt\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRows, p.Rows)
	assert.Equal(t, export.DefaultTable, p.Table)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("DATASETGEN_ROWS", "12")
	t.Setenv("DATASETGEN_PASSPHRASE", "pw")

	p, err := Load(writeProfile(t, "rows: 500\n"))
	require.NoError(t, err)
	assert.Equal(t, 12, p.Rows)
	assert.Equal(t, "pw", p.Passphrase)
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("DATASETGEN_SCHEMA", "env.txt")
	t.Setenv("DATASETGEN_FORMAT", "yaml")

	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env.txt", p.Schema)
	assert.Equal(t, "yaml", p.Format)
	assert.Equal(t, DefaultRows, p.Rows)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{"default", func(*Profile) {}, false},
		{"zero rows", func(p *Profile) { p.Rows = 0 }, true},
		{"too many rows", func(p *Profile) { p.Rows = MaxRows + 1 }, true},
		{"max rows", func(p *Profile) { p.Rows = MaxRows }, false},
		{"bad format", func(p *Profile) { p.Format = "xlsx" }, true},
		{"sealed format", func(p *Profile) { p.Format = "sealed" }, false},
		{"too many workers", func(p *Profile) { p.Workers = MaxWorkers + 1 }, true},
		{"negative workers", func(p *Profile) { p.Workers = -1 }, true},
		{"quoted table", func(p *Profile) { p.Table = `a"b` }, true},
		{"empty table", func(p *Profile) { p.Table = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		p    Profile
		want export.Format
	}{
		{Profile{}, export.CSV},
		{Profile{Output: "-"}, export.CSV},
		{Profile{Output: "x.yml"}, export.YAML},
		{Profile{Output: "x.db"}, export.SQLite},
		{Profile{Output: "x.csv", Format: "json"}, export.JSON},
	}
	for _, tt := range tests {
		got, err := tt.p.OutputFormat()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%+v", tt.p)
	}

	_, err := Profile{Output: "x.bin"}.OutputFormat()
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}
