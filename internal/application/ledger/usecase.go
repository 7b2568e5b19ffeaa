package ledger

import (
	"context"
	"time"

	"github.com/prayastok/stok-api/internal/application/dto"
	"github.com/prayastok/stok-api/internal/domain"
	"github.com/prayastok/stok-api/internal/domain/entity"
	"github.com/prayastok/stok-api/internal/domain/repository"
)

// UseCase is the transaction coordinator: the only writer of both the ledger
// and the items' cached quantity. Every quantity-affecting action runs inside
// one transaction with the item row locked (SELECT FOR UPDATE), so a failure
// between the ledger write and the quantity adjustment rolls both back.
type UseCase struct {
	txRunner  TxRunner
	items     repository.ItemRepository
	movements repository.MovementRepository
	notifier  Notifier
	now       func() time.Time
}

// NewUseCase builds the coordinator. notifier may be nil.
func NewUseCase(
	txRunner TxRunner,
	items repository.ItemRepository,
	movements repository.MovementRepository,
	notifier Notifier,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		items:     items,
		movements: movements,
		notifier:  notifier,
		now:       time.Now,
	}
}

func (uc *UseCase) publish(partitions ...string) {
	if uc.notifier == nil {
		return
	}
	for _, p := range partitions {
		uc.notifier.Publish(p)
	}
}

// RecordIncoming appends an incoming movement and adds its quantity to stock.
func (uc *UseCase) RecordIncoming(ctx context.Context, in dto.RecordIncomingRequest) (*entity.Movement, error) {
	if in.ItemID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		item, err := items.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		mov = uc.newMovement(item, entity.KindIncoming, in.Quantity, "")
		if err := movements.Create(mov); err != nil {
			return err
		}
		return items.SetQuantity(item.ID, item.Quantity+in.Quantity)
	})
	if err != nil {
		return nil, err
	}
	uc.publish(entity.KindIncoming, "items")
	return mov, nil
}

// RecordSale validates against the locked stock level and appends a sale.
// Oversized quantities are rejected before any write.
func (uc *UseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*entity.Movement, error) {
	if in.ItemID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		item, err := items.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		mov = uc.newMovement(item, entity.KindSale, in.Quantity, "")
		if err := movements.Create(mov); err != nil {
			return err
		}
		return items.SetQuantity(item.ID, item.Quantity-in.Quantity)
	})
	if err != nil {
		return nil, err
	}
	uc.publish(entity.KindSale, "items")
	return mov, nil
}

// RecordBorrow appends a borrow in status "borrowed" and decrements stock.
func (uc *UseCase) RecordBorrow(ctx context.Context, in dto.RecordBorrowRequest) (*entity.Movement, error) {
	if in.ItemID == "" || in.Quantity <= 0 || in.Borrower == "" || in.Purpose == "" {
		return nil, domain.ErrInvalidInput
	}

	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		item, err := items.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		mov = uc.newMovement(item, entity.KindBorrow, in.Quantity, entity.StatusBorrowed)
		mov.Borrower = in.Borrower
		mov.Purpose = in.Purpose
		if err := movements.Create(mov); err != nil {
			return err
		}
		return items.SetQuantity(item.ID, item.Quantity-in.Quantity)
	})
	if err != nil {
		return nil, err
	}
	uc.publish(entity.KindBorrow, "items")
	return mov, nil
}

// RecordReturn appends a pending customer return. Stock is untouched until the
// return is approved.
func (uc *UseCase) RecordReturn(ctx context.Context, in dto.RecordReturnRequest) (*entity.Movement, error) {
	if in.ItemID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Source != entity.SourceCODFailed && in.Source != entity.SourceDamaged {
		return nil, domain.ErrInvalidInput
	}
	if in.StoreName == "" {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.items.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	mov := uc.newMovement(item, entity.KindReturn, in.Quantity, entity.StatusPending)
	mov.Source = in.Source
	mov.StoreName = in.StoreName
	mov.Notes = in.Notes
	if err := uc.movements.Create(mov); err != nil {
		return nil, err
	}
	uc.publish(entity.KindReturn)
	return mov, nil
}

// ResolveBorrow moves a borrow out of "borrowed". Returning restores exactly
// the borrowed quantity; selling keeps the stock decrement in place and only
// flips the status. Both outcomes are terminal. The status write is
// conditional on the record still being "borrowed", so when two settlements
// race, the loser rolls back with ErrConflict instead of restoring twice.
func (uc *UseCase) ResolveBorrow(ctx context.Context, movementID, status string) error {
	if status != entity.StatusReturned && status != entity.StatusSold {
		return domain.ErrInvalidInput
	}

	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		mov, err := movements.GetByID(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.Kind != entity.KindBorrow {
			return domain.ErrInvalidInput
		}
		if mov.Status != entity.StatusBorrowed {
			return domain.ErrConflict
		}
		if status == entity.StatusReturned {
			item, err := items.GetForUpdate(mov.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if err := items.SetQuantity(item.ID, item.Quantity+mov.Quantity); err != nil {
				return err
			}
		}
		return movements.TransitionStatus(mov.ID, entity.StatusBorrowed, status)
	})
	if err != nil {
		return err
	}
	uc.publish(entity.KindBorrow, "items")
	return nil
}

// ResolveReturn settles a pending return. Approving restores the quantity and
// keeps the record with status "approved"; rejecting keeps the record and
// leaves stock untouched. Both outcomes are terminal, enforced by the same
// conditional status write as ResolveBorrow.
func (uc *UseCase) ResolveReturn(ctx context.Context, movementID, status string) error {
	if status != entity.StatusApproved && status != entity.StatusRejected {
		return domain.ErrInvalidInput
	}

	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		mov, err := movements.GetByID(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.Kind != entity.KindReturn {
			return domain.ErrInvalidInput
		}
		if mov.Status != entity.StatusPending {
			return domain.ErrConflict
		}
		if status == entity.StatusApproved {
			item, err := items.GetForUpdate(mov.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if err := items.SetQuantity(item.ID, item.Quantity+mov.Quantity); err != nil {
				return err
			}
		}
		return movements.TransitionStatus(mov.ID, entity.StatusPending, status)
	})
	if err != nil {
		return err
	}
	uc.publish(entity.KindReturn, "items")
	return nil
}

// ListMovements returns one ledger partition, optionally bounded by an
// inclusive timestamp range.
func (uc *UseCase) ListMovements(ctx context.Context, kind string, from, to *time.Time) ([]*entity.Movement, error) {
	if !entity.ValidKind(kind) {
		return nil, domain.ErrInvalidInput
	}
	return uc.movements.ListByKind(kind, from, to)
}

// ImportSales applies a parsed sales spreadsheet. Rows are validated against a
// pre-batch snapshot of stock held in memory (decremented as rows pass, never
// re-fetched); invalid rows are skipped and counted. All surviving rows commit
// in one transaction, or none do.
func (uc *UseCase) ImportSales(ctx context.Context, rows []dto.SaleImportRow) (*dto.ImportSummary, error) {
	items, err := uc.items.List(entity.OrderByCodeAsc)
	if err != nil {
		return nil, err
	}
	stock := make(map[string]int64, len(items))
	for _, it := range items {
		stock[it.Code] = it.Quantity
	}

	summary := &dto.ImportSummary{}
	var valid []dto.SaleImportRow
	for _, row := range rows {
		switch {
		case row.Code == "":
			summary.Skip(row.Row, "missing item code")
		case row.Quantity <= 0:
			summary.Skip(row.Row, "quantity must be positive")
		default:
			remaining, ok := stock[row.Code]
			if !ok {
				summary.Skip(row.Row, "unknown item code")
				continue
			}
			if row.Quantity > remaining {
				summary.Skip(row.Row, "quantity exceeds current stock")
				continue
			}
			stock[row.Code] = remaining - row.Quantity
			valid = append(valid, row)
		}
	}

	if len(valid) == 0 {
		return summary, nil
	}

	err = uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		for _, row := range valid {
			item, err := items.GetByCode(row.Code)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			item, err = items.GetForUpdate(item.ID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			// The snapshot was taken before the batch; a concurrent writer can
			// still drain stock in between. Abort the whole batch rather than
			// commit a negative quantity.
			if item.Quantity < row.Quantity {
				return domain.ErrInsufficientStock
			}
			mov := uc.newMovement(item, entity.KindSale, row.Quantity, "")
			if err := movements.Create(mov); err != nil {
				return err
			}
			if err := items.SetQuantity(item.ID, item.Quantity-row.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	summary.Imported = len(valid)
	uc.publish(entity.KindSale, "items")
	return summary, nil
}

// Reconcile rebuilds the item's cached quantity from the ledger's signed
// deltas, inside one transaction with the row locked. Returns the rebuilt
// quantity. A negative ledger total indicates corrupt history and aborts.
func (uc *UseCase) Reconcile(ctx context.Context, itemID string) (int64, error) {
	var total int64
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		item, err := items.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		movs, err := movements.ListByItem(itemID)
		if err != nil {
			return err
		}
		total = 0
		for _, m := range movs {
			total += m.SignedDelta()
		}
		if total < 0 {
			return domain.ErrConflict
		}
		if total == item.Quantity {
			return nil
		}
		return items.SetQuantity(item.ID, total)
	})
	if err != nil {
		return 0, err
	}
	uc.publish("items")
	return total, nil
}

func (uc *UseCase) newMovement(item *entity.Item, kind string, quantity int64, status string) *entity.Movement {
	return &entity.Movement{
		ItemID:    item.ID,
		ItemCode:  item.Code,
		ItemName:  item.Name,
		Quantity:  quantity,
		Kind:      kind,
		Status:    status,
		Timestamp: uc.now(),
	}
}
