package order

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/niklaus/b2b-portal/internal/modules/cart"
)

// Status represents the lifecycle state of an order. Orders are created PENDING
// and nothing in the portal advances them.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusCancelled Status = "CANCELLED"
)

// Order is an immutable record of a submitted cart.
type Order struct {
	ID          string          `json:"id"`
	UnitID      string          `json:"unit_id"`
	UnitTaxID   string          `json:"unit_tax_id"`
	PlacedAt    time.Time       `json:"placed_at"`
	Total       decimal.Decimal `json:"total"`
	Status      Status          `json:"status"`
	PaymentLink string          `json:"payment_link,omitempty"`
	Items       []cart.Line     `json:"items"`
}

// Clone returns a copy that shares no line storage with o.
func (o *Order) Clone() *Order {
	c := *o
	c.Items = slices.Clone(o.Items)
	return &c
}
