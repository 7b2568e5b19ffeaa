package dto

import (
	"time"

	"github.com/prayastok/stok-api/internal/domain/entity"
)

// CreateItemRequest registers one item; quantity always starts at zero.
type CreateItemRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// RenameItemRequest edits code and name only.
type RenameItemRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ItemResponse is the API shape of an item.
type ItemResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// ToItemResponse maps the entity.
func ToItemResponse(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:        it.ID,
		Code:      it.Code,
		Name:      it.Name,
		Category:  it.Category,
		Quantity:  it.Quantity,
		CreatedAt: it.CreatedAt,
	}
}

// ToItemResponses maps a list.
func ToItemResponses(items []*entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemResponse(it))
	}
	return out
}
