package repository

import "github.com/prayastok/stok-api/internal/domain/entity"

// ItemRepository is the persistence port for inventory items (DIP).
// Implementations must report a duplicate code as domain.ErrDuplicateCode.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCode(code string) (*entity.Item, error)
	List(order entity.ItemOrder) ([]*entity.Item, error)
	// Rename changes code and name only; category and quantity are not
	// independently editable outside transactions.
	Rename(id, code, name string) error
	// Delete is unconditional: no referential check against the ledger.
	Delete(id string) error
	// GetForUpdate locks the item row for the rest of the transaction.
	GetForUpdate(id string) (*entity.Item, error)
	SetQuantity(id string, quantity int64) error
}
