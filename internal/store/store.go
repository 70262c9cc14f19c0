// Package store persists user accounts and per-question history in Postgres.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/lib/pq"

	"github.com/futureproof-labs/insight/config"
)

type Store struct {
	DB *sql.DB
}

// NewWithDSN constructs the Store using an explicit Postgres DSN.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// New constructs the Store from the database configuration.
func New(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	return NewWithDSN(ctx, dsn)
}

// User operations

func (s *Store) CreateUser(ctx context.Context, email, hash string) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES ($1,$2)`, email, hash)
	return err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (id string, hash string, err error) {
	err = s.DB.QueryRowContext(ctx, `SELECT id, password_hash FROM users WHERE email=$1`, email).Scan(&id, &hash)
	return
}

// Question history operations

// QuestionRecord is one answered (or failed) question for a user.
type QuestionRecord struct {
	ID            string
	UserID        string
	Question      string
	ReasoningType string
	SQLText       string
	Answer        json.RawMessage
	Failed        bool
	CreatedAt     time.Time
}

// SaveQuestion records the outcome of one pipeline run. The answer is the
// full response envelope as served to the client.
func (s *Store) SaveQuestion(ctx context.Context, userID, question, reasoningType, sqlText string, answer []byte, failed bool) (string, error) {
	var id string
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO questions (user_id, question, reasoning_type, sql_text, answer, failed)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		userID, question, reasoningType, sqlText, answer, failed).Scan(&id)
	return id, err
}

// ListQuestions returns the most recent questions for a user, newest first.
func (s *Store) ListQuestions(ctx context.Context, userID string, limit int) ([]QuestionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_id, question, reasoning_type, sql_text, answer, failed, created_at
		 FROM questions WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []QuestionRecord
	for rows.Next() {
		var q QuestionRecord
		if err := rows.Scan(&q.ID, &q.UserID, &q.Question, &q.ReasoningType, &q.SQLText, &q.Answer, &q.Failed, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// GetQuestion returns a single question by id, scoped to its owner.
func (s *Store) GetQuestion(ctx context.Context, userID, id string) (QuestionRecord, error) {
	var q QuestionRecord
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, user_id, question, reasoning_type, sql_text, answer, failed, created_at
		 FROM questions WHERE id=$1 AND user_id=$2`,
		id, userID).Scan(&q.ID, &q.UserID, &q.Question, &q.ReasoningType, &q.SQLText, &q.Answer, &q.Failed, &q.CreatedAt)
	return q, err
}
