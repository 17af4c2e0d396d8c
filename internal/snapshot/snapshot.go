// Package snapshot renders a bounded textual sample of the trading tables for
// inclusion in the system preamble. It runs once at startup; the rendered text
// is static for the process lifetime even if the underlying data changes.
package snapshot

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Tables are sampled in this fixed order so the snapshot is deterministic.
var Tables = []string{"trades", "positions", "marketdata", "riskmetrics", "orders"}

// DefaultRowLimit caps the rows sampled per table.
const DefaultRowLimit = 5

// Sample holds the column headers and raw rows read from one table.
type Sample struct {
	Table   string
	Columns []string
	Rows    [][]any
}

// Read samples up to rowLimit rows plus the column header list from table.
func Read(db *sql.DB, table string, rowLimit int) (Sample, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s LIMIT %d", table, rowLimit))
	if err != nil {
		return Sample{}, fmt.Errorf("snapshot: query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Sample{}, fmt.Errorf("snapshot: columns %s: %w", table, err)
	}

	sample := Sample{Table: table, Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Sample{}, fmt.Errorf("snapshot: scan %s: %w", table, err)
		}
		sample.Rows = append(sample.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return Sample{}, fmt.Errorf("snapshot: read %s: %w", table, err)
	}
	return sample, nil
}

// Build renders the data snapshot block appended to the policy document: for
// each table the name, the column list, then one tuple line per sampled row.
// An empty table still renders its header, with zero data lines.
func Build(db *sql.DB, rowLimit int) (string, error) {
	if rowLimit <= 0 {
		rowLimit = DefaultRowLimit
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n\nDATA SNAPSHOT (top %d rows per table):\n", rowLimit)
	for _, table := range Tables {
		sample, err := Read(db, table, rowLimit)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\nTable: %s\nColumns: %s\n", sample.Table, strings.Join(sample.Columns, ", "))
		for _, row := range sample.Rows {
			b.WriteString(formatRow(row))
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// formatRow renders one row as a parenthesized tuple, matching the store's
// native value rendering: strings single-quoted, numbers bare, NULL for nil.
func formatRow(row []any) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = formatValue(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case []byte:
		return "'" + strings.ReplaceAll(string(val), "'", "''") + "'"
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		if val {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", val)
	}
}
