package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/babbaginator/pyDatasetGen/internal/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sample() schema.Dataset {
	return schema.FromRows(
		[]string{"zeta", "id", "who"},
		[][]string{
			{"z1", "1", "Zoë Ñúñez"},
			{"z2", "007", `say "hi", ok`},
		},
	)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"csv", CSV},
		{" JSON ", JSON},
		{"yml", YAML},
		{"yaml", YAML},
		{"db", SQLite},
		{"sqlite3", SQLite},
		{"sealed", Sealed},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFormat("xlsx"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(xlsx) err = %v, want ErrUnknownFormat", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	got, err := FormatFromPath("out/people.CSV")
	require.NoError(t, err)
	assert.Equal(t, CSV, got)

	got, err = FormatFromPath("people.sqlite")
	require.NoError(t, err)
	assert.Equal(t, SQLite, got)

	_, err = FormatFromPath("people")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, CSV, sample()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	want := [][]string{
		{"zeta", "id", "who"},
		{"z1", "1", "Zoë Ñúñez"},
		{"z2", "007", `say "hi", ok`},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeEmptyTable(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{CSV, ""},
		{JSON, "[]\n"},
		{YAML, "[]\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, tt.format, schema.Dataset{}))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestEncodeJSONKeepsColumnOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, JSON, sample()))

	var got []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "007", got[1]["id"])
	assert.Equal(t, `say "hi", ok`, got[1]["who"])

	first := buf.String()[:strings.Index(buf.String(), "}")]
	assert.Less(t, strings.Index(first, `"zeta"`), strings.Index(first, `"id"`))
	assert.Less(t, strings.Index(first, `"id"`), strings.Index(first, `"who"`))
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, YAML, sample()))

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	seq := doc.Content[0]
	require.Len(t, seq.Content, 2)

	var keys []string
	m := seq.Content[0]
	for i := 0; i < len(m.Content); i += 2 {
		keys = append(keys, m.Content[i].Value)
	}
	assert.Equal(t, []string{"zeta", "id", "who"}, keys)

	// numeric-looking values stay strings
	var recs []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &recs))
	assert.Equal(t, "007", recs[1]["id"])
}

func TestEncodeRejectsNonStream(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Encode(&buf, SQLite, sample()), ErrUnknownFormat)
	assert.False(t, SQLite.Stream())
	assert.True(t, CSV.Stream())
}

func TestSealRoundTrip(t *testing.T) {
	plain := []byte("id,who\n1,Zoë\n")

	sealed, err := Seal("hunter2", plain)
	require.NoError(t, err)
	assert.True(t, IsSealed(sealed))
	assert.NotContains(t, string(sealed), "Zoë")

	got, err := Unseal("hunter2", sealed)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	_, err = Unseal("wrong", sealed)
	assert.ErrorIs(t, err, ErrBadSeal)

	_, err = Unseal("hunter2", []byte("not sealed at all"))
	assert.ErrorIs(t, err, ErrBadSeal)

	_, err = Seal("", plain)
	assert.ErrorIs(t, err, ErrNoPassphrase)
}

func TestMarshalSealed(t *testing.T) {
	data, err := Marshal(Sealed, sample(), "pw")
	require.NoError(t, err)

	plain, err := Unseal("pw", data)
	require.NoError(t, err)

	var got []map[string]string
	require.NoError(t, json.Unmarshal(plain, &got))
	assert.Equal(t, "Zoë Ñúñez", got[0]["who"])
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	ctx := context.Background()

	require.NoError(t, WriteSQLite(ctx, path, "", sample()))
	// writing again replaces the table
	require.NoError(t, WriteSQLite(ctx, path, "", sample()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM dataset`).Scan(&count))
	assert.Equal(t, 2, count)

	var who, id string
	require.NoError(t, db.QueryRow(`SELECT who, id FROM dataset WHERE zeta = 'z2'`).Scan(&who, &id))
	assert.Equal(t, `say "hi", ok`, who)
	assert.Equal(t, "007", id)
}

func TestWriteSQLiteNoColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	err := WriteSQLite(context.Background(), path, "t", schema.Dataset{})
	assert.Error(t, err)
}

func TestWriteSQLiteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "out.db")
	assert.Error(t, WriteSQLite(ctx, path, "t", sample()))
}
