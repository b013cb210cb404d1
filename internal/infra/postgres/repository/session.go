package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/maktabati-bot/internal/domain/session"
	"github.com/aliskhannn/maktabati-bot/internal/infra/postgres"
)

// SessionRepository stores chat sessions as JSONB rows.
type SessionRepository struct {
	db postgres.DBTX
}

// NewSessionRepository creates a new SessionRepository on top of a pool or
// transaction.
func NewSessionRepository(db postgres.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// Get loads the session of a chat. A missing row is session.ErrNotFound.
func (r *SessionRepository) Get(ctx context.Context, chatID int64) (*session.Session, error) {
	query := `
		SELECT data
		FROM chat_sessions
		WHERE chat_id = $1
	`

	var data []byte
	err := r.db.QueryRow(ctx, query, chatID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	s, err := session.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", chatID, err)
	}
	return s, nil
}

// Save inserts a new session or replaces the stored one.
func (r *SessionRepository) Save(ctx context.Context, s *session.Session) error {
	data, err := session.Marshal(s)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO chat_sessions (chat_id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, s.ChatID, data, s.UpdatedAt); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, chatID int64) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM chat_sessions WHERE chat_id = $1", chatID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteIdle removes sessions last updated before the cutoff and returns
// their chat ids.
func (r *SessionRepository) DeleteIdle(ctx context.Context, before time.Time) ([]int64, error) {
	query := `
		DELETE FROM chat_sessions
		WHERE updated_at < $1
		RETURNING chat_id
	`

	rows, err := r.db.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("delete idle sessions: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect idle sessions: %w", err)
	}
	return ids, nil
}

// Ping checks that the database answers.
func (r *SessionRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}
