// Package chart maps tabular and graph results into the fixed payload
// shapes the front end renders.
package chart

import "strings"

// Type is the closed visualization vocabulary the classifier picks from.
type Type string

const (
	Ranking        Type = "Ranking Chart"
	Pie            Type = "Pie Chart"
	TimeSeries     Type = "Time Series Chart"
	ComparativeBar Type = "Comparative Bar Chart"
	Histogram      Type = "Histogram"
	KnowledgeGraph Type = "Knowledge Graph"
	CausalGraph    Type = "Causal Graph"
	ProcessFlow    Type = "Process Flow"
	TableFallback  Type = "Table"
)

var allTypes = []Type{
	Ranking, Pie, TimeSeries, ComparativeBar, Histogram,
	KnowledgeGraph, CausalGraph, ProcessFlow, TableFallback,
}

// Types returns the full closed vocabulary.
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType matches a classifier answer against the closed vocabulary,
// ignoring case and surrounding whitespace. Unrecognized input reports
// ok=false; callers fall back to the table branch.
func ParseType(s string) (Type, bool) {
	s = strings.TrimSpace(s)
	for _, t := range allTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return TableFallback, false
}

// IsGraph reports whether the type runs the dual-SQL node/edge branch.
func (t Type) IsGraph() bool {
	return t == KnowledgeGraph || t == CausalGraph || t == ProcessFlow
}

// Slug is the wire name used in chart payloads ("Pie Chart" -> "pie").
func (t Type) Slug() string {
	switch t {
	case Ranking:
		return "ranking"
	case Pie:
		return "pie"
	case TimeSeries:
		return "time_series"
	case ComparativeBar:
		return "comparative_bar"
	case Histogram:
		return "histogram"
	case KnowledgeGraph:
		return "knowledge_graph"
	case CausalGraph:
		return "causal_graph"
	case ProcessFlow:
		return "process_flow"
	default:
		return "table"
	}
}

// Node is one vertex of an LLM-produced graph.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Edge is one connection of an LLM-produced graph.
type Edge struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Relationship string `json:"relationship"`
}

// Graph is the interpreted node/edge payload for the graph branches.
// Edge endpoints are asked, but not guaranteed, to reference node ids;
// dangling edges are kept as-is.
type Graph struct {
	ReasoningAnswer string `json:"reasoning_answer"`
	Nodes           []Node `json:"data_nodes"`
	Edges           []Edge `json:"data_edges"`
}
