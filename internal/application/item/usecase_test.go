package item_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prayastok/stok-api/internal/application/dto"
	"github.com/prayastok/stok-api/internal/application/item"
	"github.com/prayastok/stok-api/internal/domain"
	"github.com/prayastok/stok-api/internal/domain/entity"
	"github.com/prayastok/stok-api/internal/domain/repository"
)

type fakeItems struct {
	items  map[string]*entity.Item
	nextID int
}

func newFakeItems() *fakeItems {
	return &fakeItems{items: make(map[string]*entity.Item)}
}

func (f *fakeItems) Create(it *entity.Item) error {
	for _, existing := range f.items {
		if existing.Code == it.Code {
			return domain.ErrDuplicateCode
		}
	}
	f.nextID++
	if it.ID == "" {
		it.ID = fmt.Sprintf("id-%d", f.nextID)
	}
	copied := *it
	f.items[it.ID] = &copied
	return nil
}

func (f *fakeItems) GetByID(id string) (*entity.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *it
	return &copied, nil
}

func (f *fakeItems) GetByCode(code string) (*entity.Item, error) {
	for _, it := range f.items {
		if it.Code == code {
			copied := *it
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeItems) List(order entity.ItemOrder) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(f.items))
	for _, it := range f.items {
		copied := *it
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if order == entity.OrderByCodeAsc {
			return out[i].Code < out[j].Code
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeItems) Rename(id, code, name string) error {
	it, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Code, it.Name = code, name
	return nil
}

func (f *fakeItems) Delete(id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItems) GetForUpdate(id string) (*entity.Item, error) { return f.GetByID(id) }

func (f *fakeItems) SetQuantity(id string, quantity int64) error {
	it, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

// passthroughTx runs fn against the same repository; item bulk creation never
// touches the movement side.
type passthroughTx struct{ items *fakeItems }

func (r *passthroughTx) Run(_ context.Context, fn func(repository.ItemRepository, repository.MovementRepository) error) error {
	return fn(r.items, nil)
}

func newUseCase() (*item.UseCase, *fakeItems) {
	repo := newFakeItems()
	return item.NewUseCase(repo, &passthroughTx{repo}, nil), repo
}

func TestCreateItemStartsAtZero(t *testing.T) {
	uc, _ := newUseCase()

	created, err := uc.Create(context.Background(), dto.CreateItemRequest{
		Code: "  BRG001 ", Name: "Sabun", Category: "Kebersihan",
	})
	require.NoError(t, err)

	assert.Equal(t, "BRG001", created.Code, "fields are trimmed")
	assert.EqualValues(t, 0, created.Quantity)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateItemValidation(t *testing.T) {
	uc, _ := newUseCase()

	for _, in := range []dto.CreateItemRequest{
		{Code: "", Name: "Sabun", Category: "Kebersihan"},
		{Code: "BRG001", Name: "", Category: "Kebersihan"},
		{Code: "BRG001", Name: "Sabun", Category: "   "},
	} {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestCreateItemDuplicateCode(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateItemRequest{Code: "BRG001", Name: "Sabun", Category: "Kebersihan"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateItemRequest{Code: "BRG001", Name: "Sikat", Category: "Kebersihan"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestBulkCreateSkipsDuplicatesAndGaps(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateItemRequest{Code: "BRG001", Name: "Sabun", Category: "Kebersihan"})
	require.NoError(t, err)

	summary, err := uc.BulkCreate(ctx, []dto.ItemImportRow{
		{Row: 2, Code: "BRG002", Name: "Sikat", Category: "Kebersihan"},
		{Row: 3, Code: "BRG001", Name: "Sabun Lagi", Category: "Kebersihan"}, // exists already
		{Row: 4, Code: "BRG003", Name: "", Category: "Dapur"},                // missing name
		{Row: 5, Code: "BRG004", Name: "Gelas", Category: "Dapur"},
		{Row: 6, Code: "BRG004", Name: "Gelas Dua", Category: "Dapur"}, // duplicate within batch
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 3, summary.Skipped)
	assert.Len(t, repo.items, 3)

	reasons := map[int]string{}
	for _, e := range summary.Errors {
		reasons[e.Row] = e.Reason
	}
	assert.Equal(t, "duplicate item code", reasons[3])
	assert.Equal(t, "missing required field", reasons[4])
	assert.Equal(t, "duplicate item code", reasons[6])
}

func TestBulkCreateAllInvalid(t *testing.T) {
	uc, repo := newUseCase()

	summary, err := uc.BulkCreate(context.Background(), []dto.ItemImportRow{
		{Row: 2, Code: "", Name: "Sikat", Category: "Kebersihan"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Imported)
	assert.Empty(t, repo.items)
}

func TestRenameKeepsCategoryAndQuantity(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateItemRequest{Code: "BRG001", Name: "Sabun", Category: "Kebersihan"})
	require.NoError(t, err)
	repo.items[created.ID].Quantity = 8

	require.NoError(t, uc.Rename(ctx, created.ID, dto.RenameItemRequest{Code: "BRG099", Name: "Sabun Cair"}))

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "BRG099", got.Code)
	assert.Equal(t, "Sabun Cair", got.Name)
	assert.Equal(t, "Kebersihan", got.Category)
	assert.EqualValues(t, 8, got.Quantity)
}

func TestDeleteThenGetNotFound(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateItemRequest{Code: "BRG001", Name: "Sabun", Category: "Kebersihan"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))

	_, err = uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrders(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()

	base := time.Now()
	for i, code := range []string{"BRG003", "BRG001", "BRG002"} {
		it := &entity.Item{Code: code, Name: "Item " + code, Category: "Umum", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Create(it))
	}

	byCode, err := uc.List(ctx, entity.OrderByCodeAsc)
	require.NoError(t, err)
	require.Len(t, byCode, 3)
	assert.Equal(t, "BRG001", byCode[0].Code)
	assert.Equal(t, "BRG003", byCode[2].Code)

	byCreated, err := uc.List(ctx, entity.OrderByCreatedDesc)
	require.NoError(t, err)
	assert.Equal(t, "BRG002", byCreated[0].Code, "newest first")
}
