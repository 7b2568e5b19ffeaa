// Package report holds the restock classification rule: a pure function of
// current stock vs. sales volume over the reporting window.
package report

import "github.com/shopspring/decimal"

// StockStatus is the three-tier restock urgency label.
type StockStatus string

const (
	StockSufficient StockStatus = "stock_sufficient"
	BuySoon         StockStatus = "buy_soon"
	PrepareToBuy    StockStatus = "prepare_to_buy"
)

var (
	upperFactor = decimal.RequireFromString("2.5")
	lowerFactor = decimal.RequireFromString("1.75")
)

// Classify maps (current quantity, total sales in range) to a restock status.
// Order matters: the sufficient check runs first, so with zero sales any
// positive quantity is sufficient, and a zero-quantity zero-sales item lands
// on prepare_to_buy because neither strict inequality holds.
//
//	quantity > totalSales*2.5  -> stock_sufficient
//	quantity < totalSales*1.75 -> buy_soon
//	otherwise                  -> prepare_to_buy
func Classify(quantity, totalSales int64) StockStatus {
	qty := decimal.NewFromInt(quantity)
	sales := decimal.NewFromInt(totalSales)

	switch {
	case qty.GreaterThan(sales.Mul(upperFactor)):
		return StockSufficient
	case qty.LessThan(sales.Mul(lowerFactor)):
		return BuySoon
	default:
		return PrepareToBuy
	}
}

// Valid reports whether s is one of the three defined statuses.
func (s StockStatus) Valid() bool {
	switch s {
	case StockSufficient, BuySoon, PrepareToBuy:
		return true
	}
	return false
}
