package repository

import (
	"time"

	"github.com/prayastok/stok-api/internal/domain/entity"
)

// MovementRepository is the persistence port for the stock ledger (DIP).
// The ledger is append-only except for status transitions.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// TransitionStatus sets the status only when the record still holds
	// from. A record that is gone or already settled by a concurrent
	// request yields domain.ErrConflict.
	TransitionStatus(id, from, to string) error
	// ListByKind returns one partition ordered by timestamp descending.
	// Nil bounds mean unbounded; bounds are inclusive on both ends.
	ListByKind(kind string, from, to *time.Time) ([]*entity.Movement, error)
	// ListByItem returns every movement referencing the item, any kind,
	// ordered by timestamp ascending. Used by reconciliation.
	ListByItem(itemID string) ([]*entity.Movement, error)
}
