package schema

import "strings"

// DirectiveMarker starts a synthesized field value.
const DirectiveMarker = "?"

// Kind says how a field is filled.
type Kind int

const (
	Literal Kind = iota
	Choice
	Directive
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Choice:
		return "choice"
	case Directive:
		return "directive"
	}
	return "unknown"
}

// FieldSpec describes one output column.
type FieldSpec struct {
	Name string
	Kind Kind
	Raw  string // value text as written

	Choices   []string // Choice
	Directive string   // Directive name, e.g. "int"
	Params    []string // Directive parameters
}

// ParseField classifies raw as a choice set ("[a,b,c]"), a directive
// ("?name(p1,p2)") or a literal.
func ParseField(name, raw string) FieldSpec {
	raw = strings.TrimSpace(raw)
	f := FieldSpec{Name: name, Kind: Literal, Raw: raw}

	switch {
	case strings.HasPrefix(raw, "["):
		f.Kind = Choice
		inner := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
		f.Choices = splitParams(inner)
	case strings.HasPrefix(raw, DirectiveMarker):
		f.Kind = Directive
		f.Directive, f.Params = parseDirective(strings.TrimPrefix(raw, DirectiveMarker))
	}
	return f
}

func parseDirective(body string) (name string, params []string) {
	name, rest, ok := strings.Cut(body, "(")
	name = strings.TrimSpace(name)
	if !ok {
		return name, nil
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), ")")
	return name, splitParams(rest)
}

func splitParams(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
