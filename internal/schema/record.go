package schema

// Field is one named value in a Record.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is one generated row, fields in schema order.
type Record []Field

// Get returns the value of the named field.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Map returns the record as a field name to value map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r))
	for _, f := range r {
		m[f.Name] = f.Value
	}
	return m
}

// Values returns the field values in order.
func (r Record) Values() []string {
	vals := make([]string, len(r))
	for i, f := range r {
		vals[i] = f.Value
	}
	return vals
}

// Dataset is an ordered set of records sharing one column layout.
type Dataset struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (ds Dataset) Len() int {
	return len(ds.Records)
}

// Rows returns every record's values in column order.
func (ds Dataset) Rows() [][]string {
	rows := make([][]string, len(ds.Records))
	for i, r := range ds.Records {
		rows[i] = r.Values()
	}
	return rows
}

// FromRows rebuilds a dataset from a header and value rows. Short rows are
// padded with empty values.
func FromRows(columns []string, rows [][]string) Dataset {
	ds := Dataset{Columns: columns, Records: make([]Record, len(rows))}
	for i, row := range rows {
		rec := make(Record, len(columns))
		for j, c := range columns {
			rec[j].Name = c
			if j < len(row) {
				rec[j].Value = row[j]
			}
		}
		ds.Records[i] = rec
	}
	return ds
}
