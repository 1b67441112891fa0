package order

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/niklaus/b2b-portal/internal/modules/cart"
	"github.com/niklaus/b2b-portal/internal/modules/payment"
	"github.com/niklaus/b2b-portal/internal/modules/unit"
	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

const currency = "BRL"

// RandomID draws an order id of the form NKS-nnnnnn with nnnnnn in [100000, 999999].
func RandomID() string {
	return fmt.Sprintf("NKS-%d", 100000+rand.IntN(900000))
}

// Assembler turns a unit and its cart lines into an order with a payment link.
type Assembler struct {
	gateway payment.Gateway
	newID   func() string
	now     func() time.Time
}

type AssemblerOption func(*Assembler)

// WithIDGenerator replaces RandomID.
func WithIDGenerator(fn func() string) AssemblerOption {
	return func(a *Assembler) { a.newID = fn }
}

func WithClock(fn func() time.Time) AssemblerOption {
	return func(a *Assembler) { a.now = fn }
}

func NewAssembler(gateway payment.Gateway, opts ...AssemblerOption) *Assembler {
	a := &Assembler{gateway: gateway, newID: RandomID, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Create builds a PENDING order. total must equal the sum of price times quantity over lines.
// The lines are copied, so later changes to the caller's cart do not reach the order.
// A gateway failure is returned wrapped in apperr.ErrUpstream.
func (a *Assembler) Create(ctx context.Context, u *unit.BusinessUnit, lines []cart.Line, total decimal.Decimal) (*Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", apperr.ErrInvalid)
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %s has quantity %d", apperr.ErrInvalid, l.ID, l.Quantity)
		}
	}
	if sum := cart.Total(lines); !sum.Equal(total) {
		return nil, fmt.Errorf("%w: total %s does not match lines %s", apperr.ErrInvalid, total.StringFixed(2), sum.StringFixed(2))
	}

	o := &Order{
		ID:        a.newID(),
		UnitID:    u.ID,
		UnitTaxID: u.TaxID,
		Total:     total,
		Status:    StatusPending,
		Items:     slices.Clone(lines),
	}

	co, err := a.gateway.Checkout(ctx, payment.Request{
		OrderID:  o.ID,
		UnitID:   u.ID,
		TaxID:    u.TaxID,
		Amount:   total,
		Currency: currency,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: checkout for order %s: %w", apperr.ErrUpstream, o.ID, err)
	}
	o.PaymentLink = co.Link
	o.PlacedAt = a.now().UTC()
	return o, nil
}
