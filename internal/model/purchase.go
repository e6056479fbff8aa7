package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxGuestNameLen = 150
	MaxQuantity     = 1000

	PurchaseStatusCompleted = "Completed"
)

// Purchase is a guest checkout. It owns its items; both are created only by
// the purchase service and are immutable afterwards.
type Purchase struct {
	ID          int             `json:"id" db:"id"`
	Reference   uuid.UUID       `json:"reference" db:"reference"`
	GuestName   string          `json:"guest_name" db:"guest_name"`
	GuestEmail  string          `json:"guest_email" db:"guest_email"`
	GuestPhone  *string         `json:"guest_phone,omitempty" db:"guest_phone"`
	TotalCost   decimal.Decimal `json:"total_cost" db:"total_cost"`
	Status      string          `json:"status" db:"status"`
	PurchasedAt time.Time       `json:"purchased_at" db:"purchased_at"`

	Items []*PurchaseItem `json:"items,omitempty" db:"-"`
}

func (p *Purchase) TotalTickets() int {
	total := 0
	for _, item := range p.Items {
		total += item.Quantity
	}
	return total
}

type PurchaseItem struct {
	ID         int             `json:"id" db:"id"`
	PurchaseID int             `json:"purchase_id" db:"purchase_id"`
	EventID    int             `json:"event_id" db:"event_id"`
	Quantity   int             `json:"quantity" db:"quantity"`
	// UnitPrice is the event's ticket price snapshotted at purchase time.
	// Later price edits must not change it.
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`

	EventTitle string `json:"event_title,omitempty" db:"-"`
}

func (i *PurchaseItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PurchaseRequest is a guest checkout submission. Quantity and guest fields
// are validated by the purchase service so rejections come back as typed
// errors rather than binding failures.
type PurchaseRequest struct {
	EventID    int     `json:"event_id" binding:"required"`
	GuestName  string  `json:"guest_name"`
	GuestEmail string  `json:"guest_email"`
	GuestPhone *string `json:"guest_phone"`
	Quantity   int     `json:"quantity"`
}

// PurchaseConfirmation is what a successful checkout returns to the caller.
type PurchaseConfirmation struct {
	PurchaseID int             `json:"purchase_id"`
	Reference  uuid.UUID       `json:"reference"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Lines      []PurchaseLine  `json:"lines"`
}

type PurchaseLine struct {
	EventID    int             `json:"event_id"`
	EventTitle string          `json:"event_title"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
}
