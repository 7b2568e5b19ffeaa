package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prayastok/stok-api/internal/domain/report"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name       string
		quantity   int64
		totalSales int64
		want       report.StockStatus
	}{
		{"well stocked", 100, 10, report.StockSufficient},
		{"just above threshold", 26, 10, report.StockSufficient},
		{"on the upper threshold", 25, 10, report.PrepareToBuy},
		{"running low", 10, 10, report.BuySoon},
		{"just below lower threshold", 17, 10, report.BuySoon},
		{"between thresholds", 20, 10, report.PrepareToBuy},
		{"just above lower threshold", 18, 10, report.PrepareToBuy},
		{"no sales with stock", 5, 0, report.StockSufficient},
		{"no sales no stock", 0, 0, report.PrepareToBuy},
		{"sold out with sales", 0, 4, report.BuySoon},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, report.Classify(tc.quantity, tc.totalSales))
		})
	}
}

func TestStockStatusValid(t *testing.T) {
	assert.True(t, report.StockSufficient.Valid())
	assert.True(t, report.BuySoon.Valid())
	assert.True(t, report.PrepareToBuy.Valid())
	assert.False(t, report.StockStatus("").Valid())
	assert.False(t, report.StockStatus("urgent").Valid())
}
