package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prayastok/stok-api/internal/domain"
	"github.com/prayastok/stok-api/internal/domain/entity"
	"github.com/prayastok/stok-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implements ItemRepository on PostgreSQL (usable with pool or tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the adapter. Pass a pool or a tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = "id, code, name, category, quantity, created_at"

// Create persists a new item. Code uniqueness is enforced by the unique index;
// a violation comes back as domain.ErrDuplicateCode.
func (r *ItemRepo) Create(item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (id, code, name, category, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Name, item.Category, item.Quantity, item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID fetches one item by ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByCode fetches one item by its user-assigned code.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE code = $1`
	return r.scanOne(query, code)
}

func (r *ItemRepo) scanOne(query string, arg any) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&it.ID, &it.Code, &it.Name, &it.Category, &it.Quantity, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// List returns all items in the requested order.
func (r *ItemRepo) List(order entity.ItemOrder) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	switch order {
	case entity.OrderByCodeAsc:
		query += ` ORDER BY code ASC`
	default:
		query += ` ORDER BY created_at DESC`
	}

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.Category, &it.Quantity, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Rename updates code and name only.
func (r *ItemRepo) Rename(id, code, name string) error {
	query := `UPDATE items SET code = $2, name = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, code, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("rename item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the item unconditionally. Ledger history referencing it is
// kept as-is; movements carry the code and name they were recorded with.
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetForUpdate fetches the item and locks the row for the rest of the
// transaction (SELECT FOR UPDATE), serializing concurrent quantity changes.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// SetQuantity writes the cached stock count.
func (r *ItemRepo) SetQuantity(id string, quantity int64) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE items SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
