// Package prompt renders the template for each pipeline stage. Rendering
// is pure: the same question, classification and catalog always produce
// the same prompt text.
//
// The section labels and code fencing each template demands from the model
// are exactly what internal/parse scans for. Changing a label here without
// changing the matching extractor breaks the stage contract.
package prompt

import (
	"fmt"
	"strings"

	"github.com/futureproof-labs/insight/internal/catalog"
	"github.com/futureproof-labs/insight/internal/chart"
)

// Builder renders stage prompts against a fixed schema catalog.
type Builder struct {
	schema string
}

// NewBuilder captures the rendered catalog once; per-stage calls only
// interpolate question and prior-stage outputs.
func NewBuilder(c catalog.Catalog) *Builder {
	return &Builder{schema: c.Render()}
}

// Classify renders the reasoning/visualization classification prompt.
func (b *Builder) Classify(question string) string {
	return fmt.Sprintf(`You are an expert reasoning and visualization assistant.

Given this question:
"%s"

And the following table schema:
%s

Perform the following:

Reasoning Type
Classify the reasoning type of the question. Choose one from:
[%s]

Reasoning Justification
Explain in one or two sentences why you classified the question as that reasoning type.

Reasoning Path
Describe the conceptual reasoning chain as a symbolic path of entities, relationships, or operations needed to answer the question.
Use this exact format:
Reasoning Path: [<entity/step 1> → <entity/step 2> → ... → <final target>]

Visualization Recommendation
Based on the reasoning type, data relationships, and question goal, recommend the most suitable visualization type.
Choose from:
[Knowledge Graph, Causal Graph, Process Flow, Time Series Chart, Comparative Bar Chart, Ranking Chart, Pie Chart, Histogram]

For the Visualization Type, briefly include key axis, nodes, or segment details in parentheses. Example:
Visualization Type: Comparative Bar Chart (X axis - job roles grouped by industry; Y axis - automation risk level)

OUTPUT FORMAT (strict)

Reasoning Type: <selected reasoning type>

Reasoning Justification: <one or two sentence explanation for why this reasoning type fits the question>

Reasoning Path: [<entity/step 1> → <entity/step 2> → ... → <final target>]

Visualization Type: <recommended visualization type with short axis or segment details in parentheses>`,
		question, b.schema, strings.Join(reasoningVocabulary, ", "))
}

// reasoningVocabulary is the closed reasoning-type set offered to the
// classifier.
var reasoningVocabulary = []string{
	"Deductive", "Inductive", "Abductive", "Causal", "Counterfactual",
	"Multi-Hop", "Temporal", "Probabilistic", "Analogical", "Ethical",
	"Spatial", "Scientific", "Commonsense", "Planning", "Legal",
	"Multi-Agent", "Metacognitive",
}

// SQL renders the single-statement SQL generation prompt for the chart
// branches. The model must answer with one fenced sql block and nothing
// else.
func (b *Builder) SQL(question, reasoningType string, viz chart.Type) string {
	return fmt.Sprintf(`You are an assistant generating only SQL queries (no explanations, no reasoning text) based on the reasoning type and visualization type.

Reasoning Type: %s
Visualization Type: %s
Schemas (use ONLY the tables and columns listed below - do NOT invent new table names or columns):
%s

User Question: "%s"

IMPORTANT SQL GENERATION RULES (MUST FOLLOW):
- Only use columns that are explicitly listed in the provided schema.
- The SQL MUST be compatible with the PostgreSQL dialect.
- Do NOT use reserved keywords (do, from, select, where, order, limit, group, by, table, user) as table aliases.
- When using aggregation, columns outside aggregate functions MUST be included in GROUP BY.
- ALWAYS qualify column names with table aliases when joining tables.
- Use ROUND(value::numeric, decimal_places) when rounding.
- Handle division by zero using NULLIF.
- When filtering on categorical columns, only use known valid values (completion_status: 'Failed', 'Completed', 'In Progress').
- Deduplicate using DISTINCT ON, GROUP BY, or ROW_NUMBER() window functions.
- Apply row limits to avoid clutter: Ranking Chart LIMIT 10, Pie Chart LIMIT 5, Time Series ORDER BY date DESC LIMIT 100.
- Always alias SELECT columns as:
    Ranking Chart: x, y, label
    Pie Chart: label, value
    Time Series Chart: x, y
    Comparative Bar Chart: x, series1, series2, ...
    Histogram: value
    Table: any descriptive names

Provide ONLY the following exact response format (no explanation, no commentary):

SQL Query:
`+"```sql\n<SQL>\n```", reasoningType, viz, b.schema, question)
}

// GraphSQL renders the dual-statement prompt for the node/edge branches.
// The model must answer with two labeled, numbered sections, each holding
// one fenced sql block. Either statement may be omitted when the schema
// cannot support it.
func (b *Builder) GraphSQL(question, reasoningType string, viz chart.Type) string {
	return fmt.Sprintf(`You are an expert assistant generating SQL queries for %s construction.

IMPORTANT: Only return the final SQL queries. Do NOT include explanations, reasoning, or comments.

Reasoning Type: %s
Visualization Type: %s
Schemas (use ONLY the tables and columns listed below - do NOT invent new table names or columns):
%s

User Question: "%s"

HOW TO THINK BEFORE WRITING SQL:
1. Carefully examine the schema.
%s
2. Classify:
- Nodes: select columns for node_id, node_label, node_type.
- Edges: select pairs for source, target, relationship.
3. Select logically:
- Only include real columns from the schema.
- If no meaningful edge columns exist, return only the node SQL.
4. Ensure nodes and edges are aligned:
- FIRST, write the SQL to select the node set.
- THEN, write a second SQL to select the edge set, using only node IDs that appear in the first node query, so no dangling edges appear.

IMPORTANT SQL RULES:
- Always generate two separate SQL queries: one for nodes, one for edges.
- Nodes SQL must return: node_id, node_label, node_type.
- Edges SQL must return: source, target, relationship.
- Explicitly CAST node_id, source, and target to TEXT to avoid type conflicts.
- Use DISTINCT or GROUP BY to deduplicate.
- Apply LIMIT inside each SQL query if necessary (e.g., LIMIT 20).
- Use safe table aliases (avoid reserved words).
- Use PostgreSQL-compatible syntax.

IMPORTANT OUTPUT FORMAT:
Always first output the Nodes SQL, then the Edges SQL, under these exact headers:

1. Nodes SQL:
`+"```sql\n<nodes SQL>\n```"+`
2. Edges SQL:
`+"```sql\n<edges SQL>\n```",
		graphName(viz), reasoningType, viz, b.schema, question, graphGuidance(viz))
}

// GraphData renders the interpretation prompt run over the assembled
// node/edge rows. It demands exactly two sections: a reasoning answer and
// a nodes/edges JSON block built from the actual returned rows.
func (b *Builder) GraphData(question, reasoningType string, viz chart.Type, dataJSON string) string {
	return fmt.Sprintf(`You are an expert data analyst and %s assistant.

User Question: "%s"
Reasoning Type: "%s"

Here is the query result data (in JSON format):
%s

SCHEMA AND RELATIONSHIPS:
%s

TASKS:
1. Reasoning Answer
- Provide a detailed, insightful answer to the user question based on the data, the reasoning type, and the schema.
- %s
- Make the explanation easy to understand for a non-technical user.

2. Nodes and Edges JSON
- Extract unique nodes and edges from the data above, not from the schema.
- For each node include: id (unique identifier), label (human-readable name), type (category of node).
- For each edge include: source (id of source node), target (id of target node), relationship (type of connection).

OUTPUT FORMAT:
Respond with exactly two sections:

1. Reasoning Answer:
<your detailed answer here>

2. Nodes & Edges JSON:
`+"```json"+`
{
  "nodes": [{ "id": "node_id", "label": "node_label", "type": "node_type" }],
  "edges": [{ "source": "source_id", "target": "target_id", "relationship": "edge_label" }]
}
`+"```"+`

IMPORTANT RULES:
- Deduplicate nodes and edges.
- Use simple, clean IDs (no spaces or special characters).
- Ensure all edge source/target IDs match node IDs.
- Do NOT include any explanation, notes, or markdown outside the specified format.`,
		strings.ToLower(graphName(viz)), question, reasoningType, dataJSON, b.schema, graphAnswerGuidance(viz))
}

// FinalAnswer renders the free-text interpretation prompt for the chart
// branches. The model must answer with a single "Final Answer:" section.
func (b *Builder) FinalAnswer(question, reasoningType string, viz chart.Type, dataJSON string) string {
	return fmt.Sprintf(`You are an expert data analyst and reasoning assistant.

User Question: "%s"
Reasoning Type: "%s"
Visualization Type: "%s"

Here is the query result data (in JSON format):
%s

SCHEMA:
%s

TASK:
- Provide a clear, accurate, and well-reasoned answer to the user's question based entirely on the provided data.
- Use the reasoning type and visualization type as context to guide your thinking.
- Highlight key patterns, trends, comparisons, correlations, or anomalies from the data.
- Walk through your reasoning so the user understands why this is the correct answer.
- Make the explanation simple, precise, and understandable to a non-technical audience.

OUTPUT FORMAT:
Respond with exactly one section:

Final Answer:
<your complete and reasoned answer here>

IMPORTANT RULES:
- Use only the actual data provided - do not invent or assume values not present in the JSON.
- Stay concise but thorough; avoid unnecessary technical jargon.
- Do NOT include markdown, bullet points, or formatting outside the specified section.
- Do NOT include any code, SQL, or comments.`,
		question, reasoningType, viz, dataJSON, b.schema)
}

func graphName(viz chart.Type) string {
	switch viz {
	case chart.CausalGraph:
		return "Causal Graph"
	case chart.ProcessFlow:
		return "Process Flow"
	default:
		return "Knowledge Graph"
	}
}

func graphGuidance(viz chart.Type) string {
	switch viz {
	case chart.CausalGraph:
		return `- Identify which tables contain potential causal entities (factors, drivers, events, outcomes).
- Identify which columns or relationships suggest causal links (cause to effect, predictor to outcome, intervention to result).`
	case chart.ProcessFlow:
		return `- Identify which tables contain process steps, events, activities, or milestones.
- Identify which columns or relationships define the sequence or order of steps (timestamp ordering, transitions).`
	default:
		return `- Identify which tables contain core entities that should become graph nodes (employees, programs, skills, events).
- Identify which columns or foreign key relationships can act as edges between those entities.`
	}
}

func graphAnswerGuidance(viz chart.Type) string {
	switch viz {
	case chart.CausalGraph:
		return "Focus on identifying causal relationships: explain what factors cause or influence what outcomes, and highlight key cause-effect patterns revealed in the data."
	case chart.ProcessFlow:
		return "Focus on analyzing the process flow: explain the key steps, transitions, sequences, bottlenecks, and loops revealed in the data."
	default:
		return "Explain key patterns, trends, relationships, and important insights you can extract from the data, highlighting meaningful relationships between entities."
	}
}
