package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/futureproof-labs/insight/internal/chart"
	"github.com/futureproof-labs/insight/internal/pipeline"
	"github.com/futureproof-labs/insight/internal/store"
)

type stubAnswerer struct {
	env       pipeline.Envelope
	questions []string
}

func (s *stubAnswerer) Answer(ctx context.Context, question string) pipeline.Envelope {
	s.questions = append(s.questions, question)
	return s.env
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestAskReturnsEnvelope(t *testing.T) {
	e := echo.New()
	stub := &stubAnswerer{env: pipeline.Envelope{
		ReasoningType:   "Comparative Reasoning",
		ReasoningAnswer: "Clerks rank highest.",
		SQL:             "SELECT 1",
		Chart:           &chart.Payload{Type: "ranking", Data: map[string]interface{}{}},
	}}
	handler := &AskHandler{Pipeline: stub, Logger: testLogger()}

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"which roles rank highest?"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", "user-1")

	if err := handler.ask(ctx); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var resp pipeline.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ReasoningAnswer != "Clerks rank highest." {
		t.Fatalf("answer: got %q", resp.ReasoningAnswer)
	}
	if len(stub.questions) != 1 || stub.questions[0] != "which roles rank highest?" {
		t.Fatalf("questions: got %v", stub.questions)
	}
}

func TestAskRequiresQuestion(t *testing.T) {
	e := echo.New()
	handler := &AskHandler{Pipeline: &stubAnswerer{}, Logger: testLogger()}

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	err := handler.ask(ctx)
	if err == nil {
		t.Fatalf("expected error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAskSavesHistory(t *testing.T) {
	e := echo.New()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	stub := &stubAnswerer{env: pipeline.Envelope{ReasoningType: "Causal Reasoning", SQL: "SELECT 1"}}
	handler := &AskHandler{
		Pipeline: stub,
		Store:    &store.Store{DB: db},
		Logger:   testLogger(),
	}

	mock.ExpectQuery("INSERT INTO questions").
		WithArgs("user-1", "why?", "Causal Reasoning", "SELECT 1", sqlmock.AnyArg(), false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("q1"))

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"why?"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", "user-1")

	if err := handler.ask(ctx); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAskServedEvenWhenSaveFails(t *testing.T) {
	e := echo.New()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	stub := &stubAnswerer{env: pipeline.Envelope{ReasoningType: "Causal Reasoning"}}
	handler := &AskHandler{Pipeline: stub, Store: &store.Store{DB: db}, Logger: testLogger()}

	mock.ExpectQuery("INSERT INTO questions").WillReturnError(io.ErrUnexpectedEOF)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"why?"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", "user-1")

	if err := handler.ask(ctx); err != nil {
		t.Fatalf("ask must not fail on history errors: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestHistory(t *testing.T) {
	e := echo.New()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	handler := &AskHandler{Store: &store.Store{DB: db}, Logger: testLogger()}

	mock.ExpectQuery("SELECT id, user_id, question").
		WithArgs("user-1", 50).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "question", "reasoning_type", "sql_text", "answer", "failed", "created_at"}))

	req := httptest.NewRequest(http.MethodGet, "/api/ask/history", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", "user-1")

	if err := handler.history(ctx); err != nil {
		t.Fatalf("history: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty history must serialize as [], got %q", rec.Body.String())
	}
}
