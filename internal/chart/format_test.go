package chart

import (
	"reflect"
	"testing"

	"github.com/futureproof-labs/insight/internal/tabular"
)

func TestFormatRanking(t *testing.T) {
	res := tabular.Result{
		Columns: []string{"x", "y", "label"},
		Rows: []tabular.Row{
			{"x": "Clerk", "y": 0.9, "label": "Clerk"},
			{"x": "Nurse", "y": 0.2, "label": "Nurse"},
		},
	}
	p := Format(res, Ranking, nil)
	if p.Type != "ranking" {
		t.Fatalf("type: got %q", p.Type)
	}
	data := p.Data.(map[string]interface{})
	if !reflect.DeepEqual(data["x"], []interface{}{"Clerk", "Nurse"}) {
		t.Fatalf("x: got %v", data["x"])
	}
	if !reflect.DeepEqual(data["y"], []interface{}{0.9, 0.2}) {
		t.Fatalf("y: got %v", data["y"])
	}
}

func TestFormatRankingMissingColumns(t *testing.T) {
	res := tabular.Result{Columns: []string{"other"}, Rows: []tabular.Row{{"other": 1}}}
	data := Format(res, Ranking, nil).Data.(map[string]interface{})
	for _, k := range []string{"x", "y", "labels"} {
		v := data[k].([]interface{})
		if v == nil || len(v) != 0 {
			t.Fatalf("%s: expected empty non-nil list, got %v", k, v)
		}
	}
}

func TestFormatPie(t *testing.T) {
	res := tabular.Result{
		Columns: []string{"label", "value"},
		Rows:    []tabular.Row{{"label": "High", "value": 10}},
	}
	data := Format(res, Pie, nil).Data.(map[string]interface{})
	if !reflect.DeepEqual(data["labels"], []interface{}{"High"}) {
		t.Fatalf("labels: got %v", data["labels"])
	}
	if !reflect.DeepEqual(data["values"], []interface{}{10}) {
		t.Fatalf("values: got %v", data["values"])
	}
}

func TestFormatTimeSeriesCoercesX(t *testing.T) {
	res := tabular.Result{
		Columns: []string{"x", "y"},
		Rows:    []tabular.Row{{"x": 2021, "y": 5}, {"x": 2022, "y": 7}},
	}
	data := Format(res, TimeSeries, nil).Data.(map[string]interface{})
	if !reflect.DeepEqual(data["x"], []string{"2021", "2022"}) {
		t.Fatalf("x: got %v", data["x"])
	}
}

func TestFormatComparativeBar(t *testing.T) {
	res := tabular.Result{
		Columns: []string{"x", "low_risk", "high_risk"},
		Rows: []tabular.Row{
			{"x": "Retail", "low_risk": 1, "high_risk": 3},
			{"x": "Health", "low_risk": 4, "high_risk": 2},
		},
	}
	data := Format(res, ComparativeBar, nil).Data.(map[string]interface{})
	series := data["series"].([]Series)
	if len(series) != 2 {
		t.Fatalf("series: got %d", len(series))
	}
	if series[0].Name != "low_risk" || !reflect.DeepEqual(series[0].Data, []interface{}{1, 4}) {
		t.Fatalf("series[0]: got %+v", series[0])
	}
	if !reflect.DeepEqual(data["categories"], []interface{}{"Retail", "Health"}) {
		t.Fatalf("categories: got %v", data["categories"])
	}
}

func TestFormatHistogram(t *testing.T) {
	res := tabular.Result{Columns: []string{"value"}, Rows: []tabular.Row{{"value": 0.1}}}
	data := Format(res, Histogram, nil).Data.(map[string]interface{})
	if !reflect.DeepEqual(data["values"], []interface{}{0.1}) {
		t.Fatalf("values: got %v", data["values"])
	}
}

func TestFormatGraph(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: "1", Label: "Clerk", Type: "role"}},
		Edges: []Edge{{Source: "1", Target: "2", Relationship: "works_in"}},
	}
	p := Format(tabular.Result{}, KnowledgeGraph, g)
	if p.Type != "knowledge_graph" {
		t.Fatalf("type: got %q", p.Type)
	}
	data := p.Data.(map[string]interface{})
	if !reflect.DeepEqual(data["nodes"], g.Nodes) || !reflect.DeepEqual(data["edges"], g.Edges) {
		t.Fatalf("got %v", data)
	}
}

func TestFormatGraphNil(t *testing.T) {
	data := Format(tabular.Result{}, CausalGraph, nil).Data.(map[string]interface{})
	if data["nodes"].([]Node) == nil || data["edges"].([]Edge) == nil {
		t.Fatalf("expected empty non-nil lists, got %v", data)
	}
}

func TestFormatTableDumpsRows(t *testing.T) {
	res := tabular.Result{Columns: []string{"a"}, Rows: []tabular.Row{{"a": 1}}}
	p := Format(res, TableFallback, nil)
	if p.Type != "table" {
		t.Fatalf("type: got %q", p.Type)
	}
	if !reflect.DeepEqual(p.Data, res.Rows) {
		t.Fatalf("data: got %v", p.Data)
	}
}

func TestFormatTableEmpty(t *testing.T) {
	p := Format(tabular.Result{}, TableFallback, nil)
	if rows := p.Data.([]tabular.Row); rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil rows, got %v", p.Data)
	}
}

func TestFormatEmptyInputAllTypes(t *testing.T) {
	for _, typ := range Types() {
		p := Format(tabular.Result{}, typ, nil)
		if p.Type == "" || p.Data == nil {
			t.Fatalf("%q: empty input must still produce a shaped payload, got %+v", typ, p)
		}
		if data, ok := p.Data.(map[string]interface{}); ok {
			for k, v := range data {
				if v == nil {
					t.Fatalf("%q: field %s must be an empty container, not nil", typ, k)
				}
			}
		}
	}
}

func TestParseType(t *testing.T) {
	if got, ok := ParseType("  pie chart "); !ok || got != Pie {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	if got, ok := ParseType("Sankey"); ok || got != TableFallback {
		t.Fatalf("unknown type must fall back to table, got %q ok=%v", got, ok)
	}
}

func TestIsGraph(t *testing.T) {
	for _, typ := range []Type{KnowledgeGraph, CausalGraph, ProcessFlow} {
		if !typ.IsGraph() {
			t.Fatalf("%q should be a graph type", typ)
		}
	}
	for _, typ := range []Type{Ranking, Pie, TimeSeries, ComparativeBar, Histogram, TableFallback} {
		if typ.IsGraph() {
			t.Fatalf("%q should not be a graph type", typ)
		}
	}
}
