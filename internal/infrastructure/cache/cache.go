// Package cache holds the short-lived restock report cache. The report is the
// most expensive read in the system (full item scan plus a sales range scan),
// and the UI polls it; entries are invalidated whenever a transaction commits.
package cache

import (
	"context"
	"time"

	"github.com/prayastok/stok-api/internal/domain/report"
)

// ReportCache caches computed report rows per date range.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]report.Row, bool, error)
	Set(ctx context.Context, key string, rows []report.Row, ttl time.Duration) error
	// Invalidate drops all cached ranges.
	Invalidate(ctx context.Context) error
}

// NoopReportCache disables caching (no redis configured).
type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _ string) ([]report.Row, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ []report.Row, _ time.Duration) error {
	return nil
}

func (NoopReportCache) Invalidate(_ context.Context) error {
	return nil
}
