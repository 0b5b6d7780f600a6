package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
)

// maxNarrowColumns caps the column count unless wide output is requested.
const maxNarrowColumns = 6

// Table is a pre-built table with explicit headers and rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render writes the table with aligned columns.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// TableFormatter formats generic decoded payloads as a table.
//
// Supported shapes: *Table, []map, a single map (rendered as KEY/VALUE
// pairs), and []any whose elements are maps. Anything else falls back to
// indented JSON.
type TableFormatter struct {
	Wide bool
}

// Format implements Formatter.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case *Table:
		return v.Render(w)
	case Table:
		return v.Render(w)
	}

	if table, ok := f.toTable(data); ok {
		return table.Render(w)
	}

	// Fallback for untabular payloads.
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (f *TableFormatter) toTable(data any) (*Table, bool) {
	switch v := data.(type) {
	case map[string]any:
		return keyValueTable(v), true
	case []map[string]any:
		rows := make([]map[string]any, len(v))
		copy(rows, v)
		return f.rowsTable(rows)
	case []any:
		rows := make([]map[string]any, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			rows = append(rows, m)
		}
		return f.rowsTable(rows)
	default:
		return nil, false
	}
}

// keyValueTable renders a single object as two columns.
func keyValueTable(m map[string]any) *Table {
	keys := sortedKeys(m)
	t := &Table{Headers: []string{"KEY", "VALUE"}}
	for _, k := range keys {
		t.Rows = append(t.Rows, []string{k, cellValue(m[k])})
	}
	return t
}

// rowsTable renders a list of objects with one column per key.
func (f *TableFormatter) rowsTable(rows []map[string]any) (*Table, bool) {
	if len(rows) == 0 {
		return &Table{Headers: []string{"(empty)"}}, true
	}

	seen := make(map[string]bool)
	var columns []string
	for _, row := range rows {
		for _, k := range sortedKeys(row) {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)
	if !f.Wide && len(columns) > maxNarrowColumns {
		columns = columns[:maxNarrowColumns]
	}

	t := &Table{}
	for _, c := range columns {
		t.Headers = append(t.Headers, strings.ToUpper(c))
	}
	for _, row := range rows {
		var cells []string
		for _, c := range columns {
			cells = append(cells, cellValue(row[c]))
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, true
}

// cellValue renders one cell; nested structures become compact JSON.
func cellValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
