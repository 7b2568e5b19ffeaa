package entity

import "time"

// Item is one inventory item. Quantity is the cached current stock count and
// must equal the sum of signed deltas of all ledger movements referencing the
// item; only the transaction coordinator (or a reconciliation) may change it.
type Item struct {
	ID        string
	Code      string // unique, user-assigned
	Name      string
	Category  string
	Quantity  int64
	CreatedAt time.Time
}

// ItemOrder selects the ordering of item listings.
type ItemOrder string

const (
	// OrderByCreatedDesc is used by the stock listing view.
	OrderByCreatedDesc ItemOrder = "created_desc"
	// OrderByCodeAsc is used by selection pickers.
	OrderByCodeAsc ItemOrder = "code_asc"
)
