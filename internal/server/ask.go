package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/futureproof-labs/insight/internal/pipeline"
	"github.com/futureproof-labs/insight/internal/store"
)

// Answerer is the pipeline surface the HTTP layer depends on.
type Answerer interface {
	Answer(ctx context.Context, question string) pipeline.Envelope
}

// AskHandler serves question answering and per-user question history.
type AskHandler struct {
	Pipeline Answerer
	Store    *store.Store
	Logger   *log.Logger
}

func (h *AskHandler) Register(g *echo.Group, secret []byte) {
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc { return withAuth(next, secret) })
	g.POST("", h.ask)
	g.GET("/history", h.history)
	g.GET("/history/:id", h.historyItem)
}

func (h *AskHandler) ask(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Question == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question is required")
	}

	env := h.Pipeline.Answer(c.Request().Context(), req.Question)

	// History persistence is best effort; the answer is served regardless.
	if h.Store != nil {
		if userID, ok := c.Get("user_id").(string); ok {
			body, err := json.Marshal(env)
			if err == nil {
				_, err = h.Store.SaveQuestion(c.Request().Context(), userID, req.Question, env.ReasoningType, env.SQL, body, env.Error != nil)
			}
			if err != nil {
				h.Logger.Printf("failed to save question for user %s: %v", userID, err)
			}
		}
	}
	return c.JSON(http.StatusOK, env)
}

func (h *AskHandler) history(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	records, err := h.Store.ListQuestions(c.Request().Context(), userID, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	out := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		out = append(out, map[string]interface{}{
			"id":             r.ID,
			"question":       r.Question,
			"reasoning_type": r.ReasoningType,
			"failed":         r.Failed,
			"created_at":     r.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AskHandler) historyItem(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	rec, err := h.Store.GetQuestion(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "question not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":             rec.ID,
		"question":       rec.Question,
		"reasoning_type": rec.ReasoningType,
		"sql":            rec.SQLText,
		"answer":         rec.Answer,
		"failed":         rec.Failed,
		"created_at":     rec.CreatedAt,
	})
}
