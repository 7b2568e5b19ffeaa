package ledger

import (
	"context"

	"github.com/prayastok/stok-api/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction, passing
// repositories bound to that tx. It is the atomicity guarantee for the stock
// ledger protocol: the ledger write and the cached-quantity adjustment commit
// together or not at all.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
	) error) error
}

// Notifier is told which ledger partitions changed after a successful commit.
// Implementations must not block.
type Notifier interface {
	Publish(partition string)
}
