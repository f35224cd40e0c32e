package export

import (
	"bytes"
	"encoding/json"
	"time"
)

// Field is one labeled cell of a report row.
type Field struct {
	Label string
	Value any
}

// Row is an ordered sequence of labeled values. Field order is
// significant: encoders derive headers and column order from it.
type Row struct {
	fields []Field
}

func NewRow(fields ...Field) Row {
	return Row{fields: fields}
}

func (r *Row) Add(label string, value any) {
	r.fields = append(r.fields, Field{Label: label, Value: value})
}

func (r Row) Labels() []string {
	labels := make([]string, len(r.fields))
	for i, f := range r.fields {
		labels[i] = f.Label
	}
	return labels
}

func (r Row) Values() []any {
	values := make([]any, len(r.fields))
	for i, f := range r.fields {
		values[i] = f.Value
	}
	return values
}

func (r Row) Len() int {
	return len(r.fields)
}

// MarshalJSON emits the row as an object with fields in insertion order.
// encoding/json map marshalling would sort keys alphabetically, which
// breaks column order for consumers of the structured encoding.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

const dateLayout = "2006-01-02"

func orString(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func orDate(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Format(dateLayout)
}
