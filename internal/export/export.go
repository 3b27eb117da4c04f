// Package export renders record collections as CSV or pretty-printed JSON
// for file downloads.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column pairs a human-readable CSV header with a dot-notation path into the
// JSON shape of a record, e.g. "currency.code" or "shipping.cost".
type Column struct {
	Header string
	Path   string
}

// CSV writes one header row of column labels followed by one row per record.
// Records are flattened through their JSON representation so paths resolve
// against json tags, not Go field names. encoding/csv handles quoting.
func CSV(w io.Writer, columns []Column, records any) error {
	rows, err := toMaps(records)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	line := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			line[i] = renderValue(resolvePath(row, col.Path))
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSON writes the records as a pretty-printed JSON array.
func JSON(w io.Writer, records any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Filename returns the download name for an export, e.g. "invoices-export.csv".
func Filename(entity, format string) string {
	return entity + "-export." + format
}

func toMaps(records any) ([]map[string]any, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func resolvePath(row map[string]any, path string) any {
	parts := strings.Split(path, ".")
	var current any = row
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}
