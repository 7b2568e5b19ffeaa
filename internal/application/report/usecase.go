package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/prayastok/stok-api/internal/domain"
	"github.com/prayastok/stok-api/internal/domain/entity"
	"github.com/prayastok/stok-api/internal/domain/report"
	"github.com/prayastok/stok-api/internal/domain/repository"
	"github.com/prayastok/stok-api/internal/infrastructure/cache"
)

const cacheTTL = 30 * time.Second

// UseCase is the report aggregator: it folds the sale partition of the ledger
// over a date range and classifies each item's restock urgency.
type UseCase struct {
	items     repository.ItemRepository
	movements repository.MovementRepository
	cache     cache.ReportCache
}

// NewUseCase builds the aggregator. cache may be a NoopReportCache.
func NewUseCase(items repository.ItemRepository, movements repository.MovementRepository, c cache.ReportCache) *UseCase {
	if c == nil {
		c = cache.NoopReportCache{}
	}
	return &UseCase{items: items, movements: movements, cache: c}
}

// Options controls post-aggregation shaping of the rows.
type Options struct {
	SortBy string // code, name, category, quantity, total_sales, stock_status
	Desc   bool
	Search string             // free-text match on code or name
	Status report.StockStatus // empty = all
}

// Generate computes the report for [startOfDay(start), endOfDay(end)], both
// inclusive, then filters and sorts per opts. Filtering and sorting are
// applied after the cache so every shaping of the same range hits one entry.
func (uc *UseCase) Generate(ctx context.Context, start, end time.Time, opts Options) ([]report.Row, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	if opts.Status != "" && !opts.Status.Valid() {
		return nil, domain.ErrInvalidInput
	}

	from := StartOfDay(start)
	to := EndOfDay(end)
	key := from.Format("2006-01-02") + ":" + to.Format("2006-01-02")

	rows, hit, err := uc.cache.Get(ctx, key)
	if err != nil || !hit {
		// Cache errors degrade to a recompute.
		rows, err = uc.aggregate(ctx, from, to)
		if err != nil {
			return nil, err
		}
		_ = uc.cache.Set(ctx, key, rows, cacheTTL)
	}

	return Shape(rows, opts), nil
}

func (uc *UseCase) aggregate(ctx context.Context, from, to time.Time) ([]report.Row, error) {
	items, err := uc.items.List(entity.OrderByCodeAsc)
	if err != nil {
		return nil, err
	}
	sales, err := uc.movements.ListByKind(entity.KindSale, &from, &to)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int64, len(items))
	for _, s := range sales {
		totals[s.ItemID] += s.Quantity
	}

	rows := make([]report.Row, 0, len(items))
	for _, it := range items {
		total := totals[it.ID] // missing entries are implicitly 0
		rows = append(rows, report.Row{
			ItemID:     it.ID,
			Code:       it.Code,
			Name:       it.Name,
			Category:   it.Category,
			Quantity:   it.Quantity,
			TotalSales: total,
			Status:     report.Classify(it.Quantity, total),
		})
	}
	return rows, nil
}

// Shape filters by search text and status, then sorts by the requested column
// (stable, so ties keep their prior order).
func Shape(rows []report.Row, opts Options) []report.Row {
	search := strings.ToLower(strings.TrimSpace(opts.Search))
	out := make([]report.Row, 0, len(rows))
	for _, r := range rows {
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Code), search) &&
			!strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		if opts.Status != "" && r.Status != opts.Status {
			continue
		}
		out = append(out, r)
	}

	if opts.SortBy == "" {
		return out
	}
	less := lessFunc(opts.SortBy)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if opts.Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(sortBy string) func(a, b report.Row) bool {
	switch sortBy {
	case "code":
		return func(a, b report.Row) bool { return a.Code < b.Code }
	case "name":
		return func(a, b report.Row) bool { return a.Name < b.Name }
	case "category":
		return func(a, b report.Row) bool { return a.Category < b.Category }
	case "quantity":
		return func(a, b report.Row) bool { return a.Quantity < b.Quantity }
	case "total_sales":
		return func(a, b report.Row) bool { return a.TotalSales < b.TotalSales }
	case "stock_status":
		return func(a, b report.Row) bool { return a.Status < b.Status }
	}
	return nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last instant of t's day, so range queries stay inclusive.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// MonthRange is the "current month" preset: first day of t's month through t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first, t
}
