package dto

import "github.com/prayastok/stok-api/internal/domain/report"

// ReportRowResponse is one line of the restock report.
type ReportRowResponse struct {
	ItemID     string `json:"item_id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Quantity   int64  `json:"quantity"`
	TotalSales int64  `json:"total_sales"`
	Status     string `json:"stock_status"`
}

// ToReportRows maps domain rows.
func ToReportRows(rows []report.Row) []ReportRowResponse {
	out := make([]ReportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ReportRowResponse{
			ItemID:     r.ItemID,
			Code:       r.Code,
			Name:       r.Name,
			Category:   r.Category,
			Quantity:   r.Quantity,
			TotalSales: r.TotalSales,
			Status:     string(r.Status),
		})
	}
	return out
}
