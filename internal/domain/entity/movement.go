package entity

import "time"

// Ledger partitions (movement kinds).
const (
	KindIncoming = "incoming"
	KindSale     = "sale"
	KindBorrow   = "borrow"
	KindReturn   = "return"
)

// Borrow statuses. A borrow starts as borrowed; returned and sold are terminal.
const (
	StatusBorrowed = "borrowed"
	StatusReturned = "returned"
	StatusSold     = "sold"
)

// Return statuses. A return starts pending; approved and rejected are terminal
// and both keep the record.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Return sources.
const (
	SourceCODFailed = "cod_failed"
	SourceDamaged   = "damaged"
)

// Movement is one record of a quantity-affecting event in the append-only
// ledger. Quantity is always positive; the sign of its effect on stock depends
// on kind and current status (see SignedDelta). Item code and name are
// denormalized so history survives item renames and deletes.
type Movement struct {
	ID        string
	ItemID    string
	ItemCode  string
	ItemName  string
	Quantity  int64
	Kind      string
	Status    string // empty for incoming and sale
	Borrower  string // borrow only
	Purpose   string // borrow only
	Source    string // return only: cod_failed, damaged
	StoreName string // return only
	Notes     string // return only
	Timestamp time.Time
}

// SignedDelta is the movement's current contribution to the item's stock:
//
//	incoming                +q
//	sale                    -q
//	borrow/borrowed         -q
//	borrow/returned          0  (original -q reversed on return)
//	borrow/sold             -q  (stock was already decremented at borrow time)
//	return/pending           0
//	return/approved         +q
//	return/rejected          0
//
// The invariant is item.Quantity == sum of SignedDelta over the item's movements.
func (m *Movement) SignedDelta() int64 {
	switch m.Kind {
	case KindIncoming:
		return m.Quantity
	case KindSale:
		return -m.Quantity
	case KindBorrow:
		if m.Status == StatusReturned {
			return 0
		}
		return -m.Quantity
	case KindReturn:
		if m.Status == StatusApproved {
			return m.Quantity
		}
		return 0
	}
	return 0
}

// ValidKind reports whether k names a ledger partition.
func ValidKind(k string) bool {
	switch k {
	case KindIncoming, KindSale, KindBorrow, KindReturn:
		return true
	}
	return false
}
