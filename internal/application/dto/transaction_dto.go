package dto

import (
	"time"

	"github.com/prayastok/stok-api/internal/domain/entity"
)

// RecordIncomingRequest records stock arriving.
type RecordIncomingRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// RecordSaleRequest records a sale.
type RecordSaleRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// RecordBorrowRequest records items loaned out.
type RecordBorrowRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
	Borrower string `json:"borrower"`
	Purpose  string `json:"purpose"`
}

// RecordReturnRequest records a customer return awaiting review.
type RecordReturnRequest struct {
	ItemID    string `json:"item_id"`
	Quantity  int64  `json:"quantity"`
	Source    string `json:"source"` // cod_failed, damaged
	StoreName string `json:"store_name"`
	Notes     string `json:"notes"`
}

// UpdateStatusRequest transitions a borrow (returned|sold) or a return
// (approved|rejected).
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// MovementResponse is the API shape of a ledger record.
type MovementResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	ItemCode  string    `json:"item_code"`
	ItemName  string    `json:"item_name"`
	Quantity  int64     `json:"quantity"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status,omitempty"`
	Borrower  string    `json:"borrower,omitempty"`
	Purpose   string    `json:"purpose,omitempty"`
	Source    string    `json:"source,omitempty"`
	StoreName string    `json:"store_name,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ToMovementResponse maps the entity.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		ItemCode:  m.ItemCode,
		ItemName:  m.ItemName,
		Quantity:  m.Quantity,
		Kind:      m.Kind,
		Status:    m.Status,
		Borrower:  m.Borrower,
		Purpose:   m.Purpose,
		Source:    m.Source,
		StoreName: m.StoreName,
		Notes:     m.Notes,
		Timestamp: m.Timestamp,
	}
}

// ToMovementResponses maps a list.
func ToMovementResponses(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}
