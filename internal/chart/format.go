package chart

import "github.com/futureproof-labs/insight/internal/tabular"

// Payload is the chart envelope handed to the front end.
type Payload struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Series is one named value sequence of a comparative bar chart.
type Series struct {
	Name string        `json:"name"`
	Data []interface{} `json:"data"`
}

// Format maps a tabular result plus a visualization type into a fixed
// payload shape. Graph types read from g instead of the tabular result.
// Missing expected columns degrade to empty lists, never an error: a
// malformed upstream result produces a visibly empty chart.
func Format(res tabular.Result, t Type, g *Graph) Payload {
	switch t {
	case Ranking:
		return Payload{Type: t.Slug(), Data: map[string]interface{}{
			"x":      res.Column("x"),
			"y":      res.Column("y"),
			"labels": res.Column("label"),
		}}
	case Pie:
		return Payload{Type: t.Slug(), Data: map[string]interface{}{
			"labels": res.Column("label"),
			"values": res.Column("value"),
		}}
	case TimeSeries:
		xs := res.Column("x")
		coerced := make([]string, 0, len(xs))
		for _, v := range xs {
			coerced = append(coerced, tabular.String(v))
		}
		return Payload{Type: t.Slug(), Data: map[string]interface{}{
			"x": coerced,
			"y": res.Column("y"),
		}}
	case ComparativeBar:
		series := []Series{}
		if !res.Empty() {
			for _, col := range res.Columns {
				if col == "x" {
					continue
				}
				series = append(series, Series{Name: col, Data: res.Column(col)})
			}
		}
		return Payload{Type: t.Slug(), Data: map[string]interface{}{
			"categories": res.Column("x"),
			"series":     series,
		}}
	case Histogram:
		return Payload{Type: t.Slug(), Data: map[string]interface{}{
			"values": res.Column("value"),
		}}
	case KnowledgeGraph, CausalGraph, ProcessFlow:
		nodes := []Node{}
		edges := []Edge{}
		if g != nil {
			if g.Nodes != nil {
				nodes = g.Nodes
			}
			if g.Edges != nil {
				edges = g.Edges
			}
		}
		return Payload{Type: t.Slug(), Data: map[string]interface{}{
			"nodes": nodes,
			"edges": edges,
		}}
	default:
		rows := res.Rows
		if rows == nil {
			rows = []tabular.Row{}
		}
		return Payload{Type: TableFallback.Slug(), Data: rows}
	}
}
