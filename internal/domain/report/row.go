package report

// Row is one derived, non-persistent line of the restock report.
type Row struct {
	ItemID     string
	Code       string
	Name       string
	Category   string
	Quantity   int64
	TotalSales int64
	Status     StockStatus
}
