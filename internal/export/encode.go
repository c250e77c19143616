package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/babbaginator/pyDatasetGen/internal/schema"
	"gopkg.in/yaml.v3"
)

// Encode writes ds to w in a stream format. Columns keep schema order in
// every format.
func Encode(w io.Writer, f Format, ds schema.Dataset) error {
	switch f {
	case CSV:
		return encodeCSV(w, ds)
	case JSON:
		return encodeJSON(w, ds)
	case YAML:
		return encodeYAML(w, ds)
	}
	return fmt.Errorf("encode %s: %w", f, ErrUnknownFormat)
}

// Marshal returns ds encoded as f. Sealed output is JSON wrapped with
// passphrase; SQLite is not a byte format and must go through WriteSQLite.
func Marshal(f Format, ds schema.Dataset, passphrase string) ([]byte, error) {
	var buf bytes.Buffer
	if f == Sealed {
		if err := encodeJSON(&buf, ds); err != nil {
			return nil, err
		}
		return Seal(passphrase, buf.Bytes())
	}

	if err := Encode(&buf, f, ds); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeCSV(w io.Writer, ds schema.Dataset) error {
	if len(ds.Columns) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return fmt.Errorf("encode csv: header: %w", err)
	}
	for i, rec := range ds.Records {
		if err := cw.Write(rec.Values()); err != nil {
			return fmt.Errorf("encode csv: row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}

// orderedRecord marshals as a JSON object with keys in field order.
type orderedRecord schema.Record

func (r orderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSON(w io.Writer, ds schema.Dataset) error {
	recs := make([]orderedRecord, len(ds.Records))
	for i, r := range ds.Records {
		recs[i] = orderedRecord(r)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func encodeYAML(w io.Writer, ds schema.Dataset) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, rec := range ds.Records {
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range rec {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value},
			)
		}
		doc.Content = append(doc.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}
