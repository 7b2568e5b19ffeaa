package item

import (
	"context"
	"strings"
	"time"

	"github.com/prayastok/stok-api/internal/application/dto"
	"github.com/prayastok/stok-api/internal/application/ledger"
	"github.com/prayastok/stok-api/internal/domain"
	"github.com/prayastok/stok-api/internal/domain/entity"
	"github.com/prayastok/stok-api/internal/domain/repository"
)

// UseCase is the item store: registration, bulk import, rename, delete and
// listing. Quantity is never written here; that belongs to the coordinator.
type UseCase struct {
	items    repository.ItemRepository
	txRunner ledger.TxRunner
	notifier ledger.Notifier
	now      func() time.Time
}

// NewUseCase builds the item store. notifier may be nil.
func NewUseCase(items repository.ItemRepository, txRunner ledger.TxRunner, notifier ledger.Notifier) *UseCase {
	return &UseCase{
		items:    items,
		txRunner: txRunner,
		notifier: notifier,
		now:      time.Now,
	}
}

func (uc *UseCase) publish() {
	if uc.notifier != nil {
		uc.notifier.Publish("items")
	}
}

// Create registers one item with quantity zero. Code, name and category are
// all required; a duplicate code is rejected by the data layer.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*entity.Item, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if code == "" || name == "" || category == "" {
		return nil, domain.ErrInvalidInput
	}

	item := &entity.Item{
		Code:      code,
		Name:      name,
		Category:  category,
		Quantity:  0,
		CreatedAt: uc.now(),
	}
	if err := uc.items.Create(item); err != nil {
		return nil, err
	}
	uc.publish()
	return item, nil
}

// BulkCreate applies a parsed item spreadsheet. Rows missing a required field
// or duplicating a code (within the batch or against existing items) are
// skipped and counted; all surviving rows commit in one transaction.
func (uc *UseCase) BulkCreate(ctx context.Context, rows []dto.ItemImportRow) (*dto.ImportSummary, error) {
	existing, err := uc.items.List(entity.OrderByCodeAsc)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, it := range existing {
		seen[it.Code] = true
	}

	summary := &dto.ImportSummary{}
	var valid []dto.ItemImportRow
	for _, row := range rows {
		row.Code = strings.TrimSpace(row.Code)
		row.Name = strings.TrimSpace(row.Name)
		row.Category = strings.TrimSpace(row.Category)
		switch {
		case row.Code == "" || row.Name == "" || row.Category == "":
			summary.Skip(row.Row, "missing required field")
		case seen[row.Code]:
			summary.Skip(row.Row, "duplicate item code")
		default:
			seen[row.Code] = true
			valid = append(valid, row)
		}
	}

	if len(valid) == 0 {
		return summary, nil
	}

	now := uc.now()
	err = uc.txRunner.Run(ctx, func(items repository.ItemRepository, _ repository.MovementRepository) error {
		for _, row := range valid {
			item := &entity.Item{
				Code:      row.Code,
				Name:      row.Name,
				Category:  row.Category,
				Quantity:  0,
				CreatedAt: now,
			}
			if err := items.Create(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	summary.Imported = len(valid)
	uc.publish()
	return summary, nil
}

// Rename edits code and name. Category and quantity stay as they are.
func (uc *UseCase) Rename(ctx context.Context, id string, in dto.RenameItemRequest) error {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if id == "" || code == "" || name == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.items.Rename(id, code, name); err != nil {
		return err
	}
	uc.publish()
	return nil
}

// Delete removes the item unconditionally. Ledger history referencing the item
// is deliberately left in place.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.items.Delete(id); err != nil {
		return err
	}
	uc.publish()
	return nil
}

// List returns all items in the requested order (creation time for the stock
// listing, code for pickers).
func (uc *UseCase) List(ctx context.Context, order entity.ItemOrder) ([]*entity.Item, error) {
	return uc.items.List(order)
}

// Get returns one item.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
