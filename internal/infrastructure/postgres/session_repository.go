package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prayastok/stok-api/internal/domain"
	"github.com/prayastok/stok-api/internal/domain/entity"
	"github.com/prayastok/stok-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implements SessionRepository on PostgreSQL.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository builds the adapter.
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create persists a freshly issued session.
func (r *SessionRepo) Create(s *entity.Session) error {
	query := `
		INSERT INTO sessions (id, username, issued_at, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Username, s.IssuedAt, s.ExpiresAt, s.RevokedAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetByID fetches one session.
func (r *SessionRepo) GetByID(id string) (*entity.Session, error) {
	query := `SELECT id, username, issued_at, expires_at, revoked_at FROM sessions WHERE id = $1`
	var s entity.Session
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Username, &s.IssuedAt, &s.ExpiresAt, &s.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// Revoke marks the session unusable from the given instant.
func (r *SessionRepo) Revoke(id string, at time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE sessions SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
