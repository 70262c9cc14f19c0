// Package pipeline runs the reasoning state machine for one question:
// classify, generate SQL, execute, interpret, format. Each request is
// independent and strictly sequential; there is at most one outstanding
// completion and one outstanding query at a time, and no retries anywhere.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/futureproof-labs/insight/config"
	"github.com/futureproof-labs/insight/internal/catalog"
	"github.com/futureproof-labs/insight/internal/chart"
	"github.com/futureproof-labs/insight/internal/executor"
	"github.com/futureproof-labs/insight/internal/graph"
	"github.com/futureproof-labs/insight/internal/llm"
	"github.com/futureproof-labs/insight/internal/parse"
	"github.com/futureproof-labs/insight/internal/prompt"
	"github.com/futureproof-labs/insight/internal/tabular"
	"github.com/futureproof-labs/insight/internal/telemetry"
)

// Pipeline-fatal conditions. Both end the current question and surface in
// the error envelope; neither is retried.
var (
	// ErrNoSQL is returned when the generation stage produced no fenced
	// SQL block on a branch that requires one.
	ErrNoSQL = errors.New("completion contained no SQL to execute")
	// ErrEmptyResult is returned when the single-SQL chart branch has
	// nothing to chart. The graph branches tolerate empty halves.
	ErrEmptyResult = errors.New("query returned no rows")
)

// Orchestrator coordinates the per-question reasoning pipeline.
type Orchestrator struct {
	config    *config.Config
	logger    *log.Logger
	telemetry *telemetry.Telemetry
	llm       llm.Provider
	executor  executor.Executor
	prompts   *prompt.Builder
	assembler graph.Assembler
}

// NewOrchestrator creates a new orchestrator instance.
func NewOrchestrator(cfg *config.Config, cat catalog.Catalog, provider llm.Provider, exec executor.Executor, tele *telemetry.Telemetry) *Orchestrator {
	return &Orchestrator{
		config:    cfg,
		logger:    log.New(log.Writer(), "[PIPELINE] ", log.LstdFlags),
		telemetry: tele,
		llm:       provider,
		executor:  exec,
		prompts:   prompt.NewBuilder(cat),
		assembler: graph.New(cfg.Pipeline.GraphRowLimit),
	}
}

// Answer runs the full pipeline for one question and always returns a
// well-formed envelope: fatal errors from any stage are converted to the
// uniform error envelope here, never propagated to the caller.
func (o *Orchestrator) Answer(ctx context.Context, question string) Envelope {
	id := uuid.New().String()[:8]
	start := time.Now()

	env, err := o.answer(ctx, id, question)
	if err != nil {
		o.logger.Printf("[%s] failed after %v: %v", id, time.Since(start), err)
		o.telemetry.RecordQuestion(false)
		return failureEnvelope(err)
	}
	o.logger.Printf("[%s] completed in %v", id, time.Since(start))
	o.telemetry.RecordQuestion(true)
	return env
}

func (o *Orchestrator) answer(ctx context.Context, id, question string) (Envelope, error) {
	// Classifying
	text, err := o.complete(ctx, "classify", o.prompts.Classify(question))
	if err != nil {
		return Envelope{}, fmt.Errorf("classification failed: %w", err)
	}
	cls := parse.ExtractClassification(text)
	if cls.VisualizationRaw == "" {
		o.logger.Printf("[%s] no visualization recommendation, using table fallback", id)
	} else if cls.Visualization == chart.TableFallback && !strings.EqualFold(cls.VisualizationRaw, string(chart.TableFallback)) {
		o.logger.Printf("[%s] unrecognized visualization %q, using table fallback", id, cls.VisualizationRaw)
	}
	o.logger.Printf("[%s] reasoning=%q visualization=%q", id, cls.ReasoningType, cls.Visualization)

	if cls.Visualization.IsGraph() {
		return o.answerGraph(ctx, question, cls)
	}
	return o.answerChart(ctx, question, cls)
}

// answerChart handles the single-SQL branches: every chart type plus the
// table fallback. An empty result is a hard failure here; there is
// nothing to chart.
func (o *Orchestrator) answerChart(ctx context.Context, question string, cls parse.Classification) (Envelope, error) {
	text, err := o.complete(ctx, "generate_sql", o.prompts.SQL(question, cls.ReasoningType, cls.Visualization))
	if err != nil {
		return Envelope{}, fmt.Errorf("SQL generation failed: %w", err)
	}
	sqlText := parse.ExtractSQL(text)
	if sqlText == "" {
		return Envelope{}, ErrNoSQL
	}

	result, err := o.query(ctx, sqlText)
	if err != nil {
		return Envelope{}, fmt.Errorf("SQL execution failed: %w", err)
	}
	if result.Empty() {
		return Envelope{}, ErrEmptyResult
	}
	result = result.NormalizeColumns()

	dataJSON, err := result.JSON()
	if err != nil {
		return Envelope{}, err
	}
	answerText, err := o.complete(ctx, "interpret", o.prompts.FinalAnswer(question, cls.ReasoningType, cls.Visualization, dataJSON))
	if err != nil {
		return Envelope{}, fmt.Errorf("answer generation failed: %w", err)
	}

	payload := chart.Format(result, cls.Visualization, nil)
	return Envelope{
		ReasoningType:   cls.ReasoningType,
		ReasoningAnswer: parse.ExtractFinalAnswer(answerText),
		ReasoningPath:   cls.ReasoningPath,
		SQL:             sqlText,
		Chart:           &payload,
	}, nil
}

// answerGraph handles the dual-SQL knowledge graph, causal graph and
// process flow branches. Either SQL half may legitimately be absent, and
// either execution may return zero rows; both are tolerated.
func (o *Orchestrator) answerGraph(ctx context.Context, question string, cls parse.Classification) (Envelope, error) {
	text, err := o.complete(ctx, "generate_sql", o.prompts.GraphSQL(question, cls.ReasoningType, cls.Visualization))
	if err != nil {
		return Envelope{}, fmt.Errorf("graph SQL generation failed: %w", err)
	}
	dual := parse.ExtractDualSQL(text)

	var nodes, edges tabular.Result
	if dual.NodesSQL != "" {
		if nodes, err = o.query(ctx, dual.NodesSQL); err != nil {
			return Envelope{}, fmt.Errorf("node SQL execution failed: %w", err)
		}
		nodes = nodes.NormalizeColumns()
	}
	if dual.EdgesSQL != "" {
		if edges, err = o.query(ctx, dual.EdgesSQL); err != nil {
			return Envelope{}, fmt.Errorf("edge SQL execution failed: %w", err)
		}
		edges = edges.NormalizeColumns()
	}

	assembled := o.assembler.Assemble(nodes, edges)
	dataJSON, err := assembled.JSON()
	if err != nil {
		return Envelope{}, err
	}

	interpText, err := o.complete(ctx, "interpret", o.prompts.GraphData(question, cls.ReasoningType, cls.Visualization, dataJSON))
	if err != nil {
		return Envelope{}, fmt.Errorf("graph interpretation failed: %w", err)
	}
	g := parse.ExtractGraphPayload(interpText)

	payload := chart.Format(assembled, cls.Visualization, &g)
	return Envelope{
		ReasoningType:   cls.ReasoningType,
		ReasoningAnswer: g.ReasoningAnswer,
		ReasoningPath:   cls.ReasoningPath,
		SQL:             joinSQL(dual),
		Chart:           &payload,
	}, nil
}

func (o *Orchestrator) complete(ctx context.Context, stage, prompt string) (string, error) {
	start := time.Now()
	text, err := o.llm.Complete(ctx, prompt)
	o.telemetry.RecordLLMCall(time.Since(start), err)
	o.telemetry.RecordStage(stage, time.Since(start))
	return text, err
}

func (o *Orchestrator) query(ctx context.Context, sqlText string) (tabular.Result, error) {
	start := time.Now()
	result, err := o.executor.Query(ctx, sqlText)
	o.telemetry.RecordSQLQuery(err)
	o.telemetry.RecordStage("execute_sql", time.Since(start))
	return result, err
}

func joinSQL(d parse.DualSQL) string {
	parts := make([]string, 0, 2)
	if d.NodesSQL != "" {
		parts = append(parts, d.NodesSQL)
	}
	if d.EdgesSQL != "" {
		parts = append(parts, d.EdgesSQL)
	}
	return strings.Join(parts, "\n\n")
}
