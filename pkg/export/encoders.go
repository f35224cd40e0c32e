package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoData signals an export with zero rows. It is a user-visible
// notice, not a fatal failure; no bytes are produced.
var ErrNoData = errors.New("no data to export")

// Format selects an output encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatExcel Format = "excel"
)

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatExcel:
		return "xlsx"
	default:
		return "csv"
	}
}

// MediaType returns the content type delivered alongside encoded bytes.
func (f Format) MediaType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatExcel:
		return "application/vnd.ms-excel"
	default:
		return "text/csv"
	}
}

// EncodeCSV renders rows as comma-separated text. The header comes from
// the first row's labels. Values containing a comma or quote are wrapped
// in quotes with inner quotes doubled.
func EncodeCSV(rows []Row) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	header := rows[0].Labels()
	buf.WriteString(strings.Join(header, ","))
	buf.WriteByte('\n')

	for _, row := range rows {
		cells := make([]string, 0, row.Len())
		for _, v := range row.Values() {
			cells = append(cells, escapeCSV(stringify(v)))
		}
		buf.WriteString(strings.Join(cells, ","))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// EncodeJSON renders rows as a 2-space indented array of objects with
// column order preserved and native value types intact.
func EncodeJSON(rows []Row) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return json.MarshalIndent(rows, "", "  ")
}

// EncodeExcel renders rows as tab-separated text prefixed with a BOM so
// spreadsheet applications detect UTF-8. No quoting is applied: values
// containing tabs are not protected. Known limitation, kept as-is.
func EncodeExcel(rows []Row) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	buf.WriteString("\xEF\xBB\xBF")
	buf.WriteString(strings.Join(rows[0].Labels(), "\t"))
	buf.WriteByte('\n')

	for _, row := range rows {
		cells := make([]string, 0, row.Len())
		for _, v := range row.Values() {
			cells = append(cells, stringify(v))
		}
		buf.WriteString(strings.Join(cells, "\t"))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprintf("%v", value)
	}
}

func escapeCSV(s string) string {
	if !strings.ContainsAny(s, ",\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
