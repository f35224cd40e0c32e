package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []Row {
	return []Row{
		NewRow(Field{"Name", "Laptop, 16in"}, Field{"Status", "available"}, Field{"Count", 3}),
		NewRow(Field{"Name", `says "hi"`}, Field{"Status", ""}, Field{"Count", 0}),
	}
}

func TestEncodeCSV(t *testing.T) {
	t.Run("empty rows is a no-data notice", func(t *testing.T) {
		data, err := EncodeCSV(nil)
		assert.ErrorIs(t, err, ErrNoData)
		assert.Nil(t, data)
	})

	t.Run("quotes values with commas and doubles inner quotes", func(t *testing.T) {
		data, err := EncodeCSV(sampleRows())
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "Name,Status,Count", lines[0])
		assert.Equal(t, `"Laptop, 16in",available,3`, lines[1])
		assert.Equal(t, `"says ""hi""",,0`, lines[2])
	})

	t.Run("round-trip recovers row count and header set", func(t *testing.T) {
		rows := sampleRows()
		data, err := EncodeCSV(rows)
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, len(rows)+1)
		assert.Equal(t, rows[0].Labels(), records[0])
		assert.Equal(t, "Laptop, 16in", records[1][0])
		assert.Equal(t, `says "hi"`, records[2][0])
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		first, err := EncodeCSV(sampleRows())
		require.NoError(t, err)
		second, err := EncodeCSV(sampleRows())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestEncodeJSON(t *testing.T) {
	t.Run("empty rows is a no-data notice", func(t *testing.T) {
		_, err := EncodeJSON(nil)
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("two-space indent, native types, column order kept", func(t *testing.T) {
		rows := []Row{NewRow(Field{"Zeta", 1}, Field{"Alpha", "x"})}
		data, err := EncodeJSON(rows)
		require.NoError(t, err)

		text := string(data)
		assert.Contains(t, text, "  {")
		assert.Contains(t, text, `"Zeta": 1`)
		// Insertion order wins over alphabetical order.
		assert.Less(t, strings.Index(text, "Zeta"), strings.Index(text, "Alpha"))
	})
}

func TestEncodeExcel(t *testing.T) {
	t.Run("empty rows is a no-data notice", func(t *testing.T) {
		_, err := EncodeExcel(nil)
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("BOM prefix and tab separators", func(t *testing.T) {
		data, err := EncodeExcel(sampleRows())
		require.NoError(t, err)

		text := string(data)
		assert.True(t, strings.HasPrefix(text, "\xEF\xBB\xBF"))
		lines := strings.Split(strings.TrimRight(strings.TrimPrefix(text, "\xEF\xBB\xBF"), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "Name\tStatus\tCount", lines[0])
		// Tab encoding applies no quoting at all.
		assert.Equal(t, "Laptop, 16in\tavailable\t3", lines[1])
	})
}
