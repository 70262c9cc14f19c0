package executor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/futureproof-labs/insight/config"
	"github.com/futureproof-labs/insight/internal/tabular"
)

// Postgres executes queries over a shared database/sql handle.
type Postgres struct {
	DB *sql.DB
}

// NewPostgres wraps an existing handle, typically the one the store owns.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

// Open connects to Postgres using the database settings and verifies the
// connection with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Postgres, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &Postgres{DB: db}, nil
}

// Query runs the statement and scans every row into the generic result
// shape. The column set is whatever the statement produced; values arrive
// as driver scalars with []byte coerced to string.
func (p *Postgres) Query(ctx context.Context, query string) (tabular.Result, error) {
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return tabular.Result{}, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return tabular.Result{}, fmt.Errorf("reading columns: %w", err)
	}

	result := tabular.Result{Columns: cols}
	values := make([]interface{}, len(cols))
	scanTargets := make([]interface{}, len(cols))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return tabular.Result{}, fmt.Errorf("scanning row: %w", err)
		}
		row := make(tabular.Row, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			default:
				row[col] = v
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return tabular.Result{}, fmt.Errorf("iterating rows: %w", err)
	}

	return result, nil
}
