// Package tabular holds the dynamic result shape produced by LLM-authored
// SQL. Column sets are only known after execution, so rows are generic maps
// with an explicit column ordering alongside.
package tabular

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Row maps a column name to a scalar value.
type Row map[string]interface{}

// Result is an ordered sequence of rows plus the column order the query
// produced them in.
type Result struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the result has no rows.
func (r Result) Empty() bool { return len(r.Rows) == 0 }

// NormalizeColumns strips stray leading/trailing quote characters from
// column labels. SQL generated by the model occasionally aliases columns
// with literal quotes, which would otherwise break chart column lookup.
func (r Result) NormalizeColumns() Result {
	out := Result{Columns: make([]string, len(r.Columns)), Rows: make([]Row, len(r.Rows))}
	renames := make(map[string]string, len(r.Columns))
	for i, col := range r.Columns {
		clean := strings.Trim(col, `'"`)
		out.Columns[i] = clean
		renames[col] = clean
	}
	for i, row := range r.Rows {
		clean := make(Row, len(row))
		for k, v := range row {
			if nk, ok := renames[k]; ok {
				clean[nk] = v
			} else {
				clean[strings.Trim(k, `'"`)] = v
			}
		}
		out.Rows[i] = clean
	}
	return out
}

// Truncate returns a copy limited to at most n rows.
func (r Result) Truncate(n int) Result {
	if n < 0 || len(r.Rows) <= n {
		return r
	}
	return Result{Columns: r.Columns, Rows: r.Rows[:n]}
}

// HasColumn reports whether the named column is present.
func (r Result) HasColumn(name string) bool {
	for _, c := range r.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the values of the named column in row order, or an empty
// slice when the column is absent.
func (r Result) Column(name string) []interface{} {
	if !r.HasColumn(name) {
		return []interface{}{}
	}
	vals := make([]interface{}, 0, len(r.Rows))
	for _, row := range r.Rows {
		vals = append(vals, row[name])
	}
	return vals
}

// JSON serializes the rows as a JSON array of records, preserving column
// order is not required for the LLM stages that consume it.
func (r Result) JSON() (string, error) {
	if r.Rows == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r.Rows)
	if err != nil {
		return "", fmt.Errorf("serializing result rows: %w", err)
	}
	return string(b), nil
}

// String coerces a cell value to its string form. Used for join keys where
// the SQL casts ids to TEXT but drivers may still return other scalars.
func String(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
