// Package executor runs LLM-authored SQL against Postgres and returns the
// rows in the pipeline's generic tabular shape.
package executor

import (
	"context"

	"github.com/futureproof-labs/insight/internal/tabular"
)

// Executor is the SQL collaborator consumed by the pipeline. It is
// fallible: bad SQL and connection errors surface as errors, while a
// zero-row result is returned as an empty tabular.Result, not an error.
type Executor interface {
	Query(ctx context.Context, sql string) (tabular.Result, error)
}
