package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prayastok/stok-api/internal/domain"
	"github.com/prayastok/stok-api/internal/domain/entity"
	"github.com/prayastok/stok-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implements the ledger on PostgreSQL (usable with pool or tx).
// All four partitions live in one movements table keyed by kind.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository builds the adapter. Pass a pool or a tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = "id, item_id, item_code, item_name, quantity, kind, status, borrower, purpose, source, store_name, notes, timestamp"

// Create appends one movement to the ledger.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ItemID, m.ItemCode, m.ItemName, m.Quantity, m.Kind, m.Status,
		m.Borrower, m.Purpose, m.Source, m.StoreName, m.Notes, m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID fetches one movement.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ItemID, &m.ItemCode, &m.ItemName, &m.Quantity, &m.Kind, &m.Status,
		&m.Borrower, &m.Purpose, &m.Source, &m.StoreName, &m.Notes, &m.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// TransitionStatus settles a borrow or return record, guarded by the current
// status. Under read committed a plain read can race a concurrent settlement;
// the WHERE clause re-checks the status once the row lock is acquired, so the
// loser affects zero rows and gets ErrConflict instead of applying twice.
func (r *MovementRepo) TransitionStatus(id, from, to string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE movements SET status = $3 WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return fmt.Errorf("transition movement status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ListByKind returns one ledger partition ordered newest first, optionally
// bounded by an inclusive timestamp range.
func (r *MovementRepo) ListByKind(kind string, from, to *time.Time) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE kind = $1`
	args := []any{kind}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY timestamp DESC"

	return r.list(query, args...)
}

// ListByItem returns all movements for an item, oldest first, across all kinds.
func (r *MovementRepo) ListByItem(itemID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE item_id = $1 ORDER BY timestamp ASC`
	return r.list(query, itemID)
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.ItemCode, &m.ItemName, &m.Quantity,
			&m.Kind, &m.Status, &m.Borrower, &m.Purpose, &m.Source, &m.StoreName,
			&m.Notes, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
