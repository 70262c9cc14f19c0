package pipeline

import "github.com/futureproof-labs/insight/internal/chart"

// Envelope is the final API payload for one question. Exactly one of the
// chart/answer pair or Error is populated: the failure path deliberately
// zeroes every reasoning field rather than surfacing partial state from
// the stage that failed.
type Envelope struct {
	ReasoningType   string         `json:"reasoning_type"`
	ReasoningAnswer string         `json:"reasoning_answer"`
	ReasoningPath   []string       `json:"reasoning_path"`
	SQL             string         `json:"sql"`
	Chart           *chart.Payload `json:"chart"`
	Error           *string        `json:"error"`
}

// failureEnvelope builds the uniform error envelope from a pipeline error.
func failureEnvelope(err error) Envelope {
	msg := err.Error()
	return Envelope{Error: &msg}
}
