// Package graph joins the independently-executed node and edge result
// sets into one denormalized relation for the interpretation stage.
package graph

import (
	"encoding/json"

	"github.com/futureproof-labs/insight/internal/tabular"
)

// DefaultRowLimit bounds the assembled relation before it is serialized
// into the next LLM prompt. A policy constant, not a correctness one.
const DefaultRowLimit = 20

// Node SQL and edge SQL column contract, as demanded by the graph-sql
// prompts.
const (
	colNodeID    = "node_id"
	colNodeLabel = "node_label"
	colNodeType  = "node_type"
	colSource    = "source"
	colTarget    = "target"
)

// Assembler enriches raw edges with node labels and types.
type Assembler struct {
	RowLimit int
}

// New returns an assembler with the given row cap; non-positive values
// fall back to DefaultRowLimit.
func New(rowLimit int) Assembler {
	if rowLimit <= 0 {
		rowLimit = DefaultRowLimit
	}
	return Assembler{RowLimit: rowLimit}
}

// Assemble left-joins the edge set to the node set on source, then on
// target. Edges whose endpoints are missing from the node set keep nil
// enrichment columns instead of being dropped: the interpretation stage
// is expected to reason about gaps, not have them hidden.
//
// If only one of the two sets exists, it is returned as-is (after dedup
// and truncation). Both empty yields an empty relation.
func (a Assembler) Assemble(nodes, edges tabular.Result) tabular.Result {
	limit := a.RowLimit
	if limit <= 0 {
		limit = DefaultRowLimit
	}

	switch {
	case nodes.Empty() && edges.Empty():
		return tabular.Result{}
	case edges.Empty():
		return dedup(nodes).Truncate(limit)
	case nodes.Empty():
		// Join against an empty node set: all enrichment stays nil.
		return dedup(a.enrich(tabular.Result{}, edges)).Truncate(limit)
	default:
		return dedup(a.enrich(nodes, edges)).Truncate(limit)
	}
}

func (a Assembler) enrich(nodes, edges tabular.Result) tabular.Result {
	byID := make(map[string]tabular.Row, len(nodes.Rows))
	for _, n := range nodes.Rows {
		byID[tabular.String(n[colNodeID])] = n
	}

	out := tabular.Result{
		Columns: append(append([]string{}, edges.Columns...),
			"source_label", "source_type", "target_label", "target_type"),
	}
	for _, e := range edges.Rows {
		row := make(tabular.Row, len(e)+4)
		for k, v := range e {
			row[k] = v
		}
		row["source_label"], row["source_type"] = lookup(byID, e[colSource])
		row["target_label"], row["target_type"] = lookup(byID, e[colTarget])
		out.Rows = append(out.Rows, row)
	}
	return out
}

func lookup(byID map[string]tabular.Row, id interface{}) (label, typ interface{}) {
	n, ok := byID[tabular.String(id)]
	if !ok {
		return nil, nil
	}
	return n[colNodeLabel], n[colNodeType]
}

// dedup removes exact duplicate rows, keeping first occurrences in order.
func dedup(r tabular.Result) tabular.Result {
	if len(r.Rows) < 2 {
		return r
	}
	seen := make(map[string]struct{}, len(r.Rows))
	out := tabular.Result{Columns: r.Columns}
	for _, row := range r.Rows {
		key, err := json.Marshal(row)
		if err != nil {
			out.Rows = append(out.Rows, row)
			continue
		}
		if _, dup := seen[string(key)]; dup {
			continue
		}
		seen[string(key)] = struct{}{}
		out.Rows = append(out.Rows, row)
	}
	return out
}
