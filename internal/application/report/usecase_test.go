package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appreport "github.com/prayastok/stok-api/internal/application/report"
	"github.com/prayastok/stok-api/internal/domain"
	"github.com/prayastok/stok-api/internal/domain/entity"
	"github.com/prayastok/stok-api/internal/domain/report"
)

// stubItems serves a fixed list; the aggregator only ever lists.
type stubItems struct{ list []*entity.Item }

func (s *stubItems) Create(*entity.Item) error                     { return nil }
func (s *stubItems) GetByID(string) (*entity.Item, error)          { return nil, nil }
func (s *stubItems) GetByCode(string) (*entity.Item, error)        { return nil, nil }
func (s *stubItems) List(entity.ItemOrder) ([]*entity.Item, error) { return s.list, nil }
func (s *stubItems) Rename(string, string, string) error           { return nil }
func (s *stubItems) Delete(string) error                           { return nil }
func (s *stubItems) GetForUpdate(string) (*entity.Item, error)     { return nil, nil }
func (s *stubItems) SetQuantity(string, int64) error               { return nil }

// stubMovements serves fixed sales and remembers the requested range.
type stubMovements struct {
	sales    []*entity.Movement
	lastFrom *time.Time
	lastTo   *time.Time
}

func (s *stubMovements) Create(*entity.Movement) error                 { return nil }
func (s *stubMovements) GetByID(string) (*entity.Movement, error)      { return nil, nil }
func (s *stubMovements) TransitionStatus(string, string, string) error { return nil }
func (s *stubMovements) ListByKind(kind string, from, to *time.Time) ([]*entity.Movement, error) {
	s.lastFrom, s.lastTo = from, to
	return s.sales, nil
}
func (s *stubMovements) ListByItem(string) ([]*entity.Movement, error) { return nil, nil }

func fixtureUseCase() (*appreport.UseCase, *stubMovements) {
	items := &stubItems{list: []*entity.Item{
		{ID: "a", Code: "BRG001", Name: "Sabun", Category: "Kebersihan", Quantity: 100},
		{ID: "b", Code: "BRG002", Name: "Sikat", Category: "Kebersihan", Quantity: 10},
		{ID: "c", Code: "BRG003", Name: "Gelas", Category: "Dapur", Quantity: 20},
		{ID: "d", Code: "BRG004", Name: "Piring", Category: "Dapur", Quantity: 7},
	}}
	movements := &stubMovements{sales: []*entity.Movement{
		{ItemID: "a", Kind: entity.KindSale, Quantity: 6},
		{ItemID: "a", Kind: entity.KindSale, Quantity: 4},
		{ItemID: "b", Kind: entity.KindSale, Quantity: 10},
		{ItemID: "c", Kind: entity.KindSale, Quantity: 10},
	}}
	return appreport.NewUseCase(items, movements, nil), movements
}

func TestGenerateAggregatesAndClassifies(t *testing.T) {
	uc, movements := fixtureUseCase()
	day := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)

	rows, err := uc.Generate(context.Background(), day, day, appreport.Options{SortBy: "code"})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Sales fold per item; items without sales report zero.
	assert.EqualValues(t, 10, rows[0].TotalSales)
	assert.EqualValues(t, 10, rows[1].TotalSales)
	assert.EqualValues(t, 10, rows[2].TotalSales)
	assert.EqualValues(t, 0, rows[3].TotalSales)

	assert.Equal(t, report.StockSufficient, rows[0].Status) // 100 > 25
	assert.Equal(t, report.BuySoon, rows[1].Status)         // 10 < 17.5
	assert.Equal(t, report.PrepareToBuy, rows[2].Status)    // 17.5 <= 20 <= 25
	assert.Equal(t, report.StockSufficient, rows[3].Status) // no sales, stock on hand

	// The queried range covers whole days, inclusive.
	require.NotNil(t, movements.lastFrom)
	require.NotNil(t, movements.lastTo)
	assert.Equal(t, appreport.StartOfDay(day), *movements.lastFrom)
	assert.Equal(t, appreport.EndOfDay(day), *movements.lastTo)
}

func TestGenerateRejectsInvertedRange(t *testing.T) {
	uc, _ := fixtureUseCase()
	end := time.Now()
	start := end.Add(48 * time.Hour)

	_, err := uc.Generate(context.Background(), start, end, appreport.Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateRejectsUnknownStatusFilter(t *testing.T) {
	uc, _ := fixtureUseCase()
	now := time.Now()

	_, err := uc.Generate(context.Background(), now, now, appreport.Options{Status: "urgent"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestShapeFilterAndSort(t *testing.T) {
	rows := []report.Row{
		{Code: "BRG001", Name: "Sabun Mandi", Quantity: 100, TotalSales: 10, Status: report.StockSufficient},
		{Code: "BRG002", Name: "Sikat Gigi", Quantity: 10, TotalSales: 10, Status: report.BuySoon},
		{Code: "BRG003", Name: "Gelas", Quantity: 20, TotalSales: 10, Status: report.PrepareToBuy},
	}

	got := appreport.Shape(rows, appreport.Options{Search: "sabun"})
	require.Len(t, got, 1)
	assert.Equal(t, "BRG001", got[0].Code)

	got = appreport.Shape(rows, appreport.Options{Search: "brg00"})
	assert.Len(t, got, 3, "search matches codes too")

	got = appreport.Shape(rows, appreport.Options{Status: report.BuySoon})
	require.Len(t, got, 1)
	assert.Equal(t, "BRG002", got[0].Code)

	got = appreport.Shape(rows, appreport.Options{SortBy: "quantity"})
	assert.Equal(t, []int64{10, 20, 100}, []int64{got[0].Quantity, got[1].Quantity, got[2].Quantity})

	got = appreport.Shape(rows, appreport.Options{SortBy: "quantity", Desc: true})
	assert.Equal(t, []int64{100, 20, 10}, []int64{got[0].Quantity, got[1].Quantity, got[2].Quantity})

	// Unknown sort keys leave the input order untouched.
	got = appreport.Shape(rows, appreport.Options{SortBy: "price"})
	assert.Equal(t, "BRG001", got[0].Code)
}

func TestShapeStableOnTies(t *testing.T) {
	rows := []report.Row{
		{Code: "BRG001", Quantity: 5},
		{Code: "BRG002", Quantity: 5},
		{Code: "BRG003", Quantity: 5},
	}
	got := appreport.Shape(rows, appreport.Options{SortBy: "quantity"})
	assert.Equal(t, "BRG001", got[0].Code)
	assert.Equal(t, "BRG002", got[1].Code)
	assert.Equal(t, "BRG003", got[2].Code)
}

func TestDayHelpers(t *testing.T) {
	at := time.Date(2026, 8, 29, 13, 45, 12, 0, time.Local)

	start := appreport.StartOfDay(at)
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, at.Day(), start.Day())

	end := appreport.EndOfDay(at)
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.After(at))

	first, last := appreport.MonthRange(at)
	assert.Equal(t, 1, first.Day())
	assert.Equal(t, at.Month(), first.Month())
	assert.Equal(t, at, last)
}
