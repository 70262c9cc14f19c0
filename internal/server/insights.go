package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/futureproof-labs/insight/internal/executor"
)

// InsightsHandler serves fixed dashboard queries that do not go through
// the reasoning pipeline.
type InsightsHandler struct {
	Executor executor.Executor
}

func (h *InsightsHandler) Register(g *echo.Group, secret []byte) {
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc { return withAuth(next, secret) })
	g.GET("/activity-completion", h.activityCompletion)
	g.GET("/high-risk-roles", h.highRiskRoles)
	g.GET("/training-effectiveness", h.trainingEffectiveness)
}

// Completion rate per reskilling activity.
const activityCompletionSQL = `
SELECT activity,
       AVG(CASE WHEN completion_status = 'Completed' THEN 1.0 ELSE 0.0 END) AS completion_rate,
       COUNT(*) AS events
FROM workforce_reskilling_events
GROUP BY activity
ORDER BY completion_rate`

// Roles whose industry carries a high automation probability.
const highRiskRolesSQL = `
SELECT o.job_title,
       i.industry_name,
       MAX(f.probability_of_automation) AS automation_probability
FROM dim_occupation o
JOIN dim_industry i ON i.industry_code = o.industry_code
JOIN fact_industry_automation f ON f.industry_code = i.industry_code
GROUP BY o.job_title, i.industry_name
HAVING MAX(f.probability_of_automation) >= 0.7
ORDER BY automation_probability DESC`

// Certification rate per training program, bucketed by automation risk.
const trainingEffectivenessSQL = `
SELECT c.training_program,
       CASE
           WHEN f.probability_of_automation < 0.3 THEN 'Very Low'
           WHEN f.probability_of_automation < 0.5 THEN 'Low'
           WHEN f.probability_of_automation < 0.7 THEN 'Medium'
           ELSE 'High'
       END AS risk_level,
       AVG(CASE WHEN c.certification_earned THEN 1.0 ELSE 0.0 END) AS certification_rate,
       COUNT(*) AS cases
FROM workforce_reskilling_cases c
JOIN employee_profile e ON e.employee_id = c.employee_id
JOIN fact_industry_automation f ON f.industry_code = e.industry_code
GROUP BY c.training_program, risk_level
ORDER BY c.training_program, risk_level`

func (h *InsightsHandler) activityCompletion(c echo.Context) error {
	return h.serve(c, activityCompletionSQL)
}

func (h *InsightsHandler) highRiskRoles(c echo.Context) error {
	return h.serve(c, highRiskRolesSQL)
}

func (h *InsightsHandler) trainingEffectiveness(c echo.Context) error {
	return h.serve(c, trainingEffectivenessSQL)
}

func (h *InsightsHandler) serve(c echo.Context, query string) error {
	result, err := h.Executor.Query(c.Request().Context(), query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"columns": result.Columns,
		"rows":    result.Rows,
	})
}
