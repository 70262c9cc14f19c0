package parse

import (
	"encoding/json"
	"strings"

	"github.com/futureproof-labs/insight/internal/chart"
)

// Classification is the parsed output of the classify stage. Zero values
// mean the completion omitted that field.
type Classification struct {
	ReasoningType    string
	Justification    string
	ReasoningPath    []string
	VisualizationRaw string
	// Visualization is the matched closed-vocabulary type; unrecognized or
	// absent recommendations fall back to the table branch.
	Visualization chart.Type
}

// DualSQL is the parsed output of the graph-sql stage. Either half may be
// empty: the model legitimately returns only nodes when the schema has no
// meaningful edge columns.
type DualSQL struct {
	NodesSQL string
	EdgesSQL string
}

// ExtractClassification pulls the four labeled classify fields out of raw
// completion text. Missing lines produce empty fields, not errors.
func ExtractClassification(text string) Classification {
	c := Classification{
		ReasoningType: labeledLine(text, "Reasoning Type"),
		Justification: labeledLine(text, "Reasoning Justification"),
		ReasoningPath: extractReasoningPath(text),
	}
	c.VisualizationRaw = stripParenthetical(labeledLine(text, "Visualization Type"))
	c.Visualization, _ = chart.ParseType(c.VisualizationRaw)
	return c
}

// extractReasoningPath locates the bracketed reasoning path and splits it
// on the arrow separator. The quote stripping is compatibility for the
// slightly malformed quoting the model sometimes produces around and
// inside the bracket list.
func extractReasoningPath(text string) []string {
	pos := indexAfterLabel(text, "Reasoning Path")
	if pos < 0 {
		return nil
	}
	raw := bracketed(text[pos:])
	if raw == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, `\"`, "")
	raw = strings.ReplaceAll(raw, `"`, "")
	raw = strings.ReplaceAll(raw, `'`, "")

	raw = strings.ReplaceAll(raw, "->", "→")
	parts := strings.Split(raw, "→")
	steps := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			steps = append(steps, s)
		}
	}
	if len(steps) == 0 {
		return nil
	}
	return steps
}

// stripParenthetical drops a trailing "(...)" annotation, e.g. the axis
// details the classify prompt asks for alongside the visualization type.
func stripParenthetical(s string) string {
	if idx := strings.Index(s, "("); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// ExtractSQL returns the contents of the first fenced code block, or ""
// when the completion contains none. Callers treat "" as "no SQL to run".
func ExtractSQL(text string) string {
	sql, ok := fencedBlock(text)
	if !ok {
		return ""
	}
	return sql
}

// ExtractDualSQL returns the fenced statements under the "Nodes SQL" and
// "Edges SQL" headings. Each half is independently optional.
func ExtractDualSQL(text string) DualSQL {
	var d DualSQL
	if nodes := section(text, "Nodes SQL"); nodes != "" {
		d.NodesSQL = ExtractSQL(nodes)
	}
	if edges := section(text, "Edges SQL"); edges != "" {
		d.EdgesSQL = ExtractSQL(edges)
	}
	return d
}

// ExtractGraphPayload parses the graph-data stage output: a labeled
// reasoning answer plus a nodes/edges JSON section. The JSON may arrive
// fenced or bare; a syntactically broken block degrades to empty node and
// edge lists while the answer section is kept.
func ExtractGraphPayload(text string) chart.Graph {
	g := chart.Graph{
		ReasoningAnswer: section(text, "Reasoning Answer"),
		Nodes:           []chart.Node{},
		Edges:           []chart.Edge{},
	}

	jsonSection := section(text, "Nodes & Edges JSON")
	if jsonSection == "" {
		return g
	}
	blob, ok := fencedBlock(jsonSection)
	if !ok {
		blob = balancedBraces(jsonSection)
	}
	blob = strings.TrimSpace(strings.ReplaceAll(blob, "```", ""))
	if blob == "" {
		return g
	}

	var decoded struct {
		Nodes []chart.Node `json:"nodes"`
		Edges []chart.Edge `json:"edges"`
	}
	if err := json.Unmarshal([]byte(blob), &decoded); err != nil {
		return g
	}
	if decoded.Nodes != nil {
		g.Nodes = decoded.Nodes
	}
	if decoded.Edges != nil {
		g.Edges = decoded.Edges
	}
	return g
}

// ExtractFinalAnswer returns everything after the "Final Answer:" label to
// the end of the completion, or "" when the label is absent.
func ExtractFinalAnswer(text string) string {
	pos := indexAfterLabel(text, "Final Answer")
	if pos < 0 {
		return ""
	}
	return strings.TrimSpace(text[pos:])
}
