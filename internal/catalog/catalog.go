// Package catalog describes the fixed relational schema the reasoning
// pipeline generates SQL against. The catalog is loaded once at process
// start and consumed read-only by prompt construction.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Table describes one relation: its columns, optional primary key and
// foreign key references ("table.column").
type Table struct {
	PrimaryKey  string            `json:"primary_key,omitempty"`
	Columns     map[string]string `json:"columns"`
	ForeignKeys map[string]string `json:"foreign_keys,omitempty"`
}

// Relationship is a flat cross-table join hint used by the graph prompts.
type Relationship struct {
	LeftTable   string `json:"left_table"`
	LeftColumn  string `json:"left_column"`
	RightTable  string `json:"right_table"`
	RightColumn string `json:"right_column"`
}

// Catalog is the static schema description.
type Catalog struct {
	Tables        map[string]Table `json:"tables"`
	Relationships []Relationship   `json:"relationships"`
}

// LoadFile reads a catalog from a JSON file.
func LoadFile(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog file: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog file: %w", err)
	}
	if len(c.Tables) == 0 {
		return Catalog{}, fmt.Errorf("catalog file %s declares no tables", path)
	}
	return c, nil
}

// Load returns the catalog from path, or the built-in default when path is empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Render produces a deterministic textual description of the schema for
// prompt interpolation. Table and column names are sorted so the same
// catalog always renders to the same prompt text.
func (c Catalog) Render() string {
	var b strings.Builder

	names := make([]string, 0, len(c.Tables))
	for name := range c.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("Tables:\n")
	for _, name := range names {
		t := c.Tables[name]
		b.WriteString(fmt.Sprintf("- %s", name))
		if t.PrimaryKey != "" {
			b.WriteString(fmt.Sprintf(" (primary key: %s)", t.PrimaryKey))
		}
		b.WriteString("\n")

		cols := make([]string, 0, len(t.Columns))
		for col := range t.Columns {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			b.WriteString(fmt.Sprintf("    %s %s", col, t.Columns[col]))
			if ref, ok := t.ForeignKeys[col]; ok {
				b.WriteString(fmt.Sprintf(" -> %s", ref))
			}
			b.WriteString("\n")
		}
	}

	if len(c.Relationships) > 0 {
		b.WriteString("Relationships:\n")
		for _, r := range c.Relationships {
			b.WriteString(fmt.Sprintf("- %s.%s = %s.%s\n", r.LeftTable, r.LeftColumn, r.RightTable, r.RightColumn))
		}
	}

	return b.String()
}

// TableNames returns the catalog's table names, sorted.
func (c Catalog) TableNames() []string {
	names := make([]string, 0, len(c.Tables))
	for name := range c.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
