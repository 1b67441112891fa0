package payment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Gateway is the provider-agnostic checkout capability an order needs.
// To add a real provider, implement this interface.
type Gateway interface {
	// Checkout registers a charge with the provider and returns where the customer pays it.
	Checkout(ctx context.Context, req Request) (*Checkout, error)
}

// Request describes the charge for one order.
type Request struct {
	OrderID  string          `json:"order_id"`
	UnitID   string          `json:"unit_id"`
	TaxID    string          `json:"tax_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Checkout is a successful gateway result.
type Checkout struct {
	Link      string `json:"link"`
	Reference string `json:"reference"`
}

// DeclinedError is returned when the provider refuses the charge.
type DeclinedError struct {
	Reason string
}

func (e *DeclinedError) Error() string {
	return "payment declined: " + e.Reason
}

// GatewayFunc adapts a function to Gateway.
type GatewayFunc func(ctx context.Context, req Request) (*Checkout, error)

func (f GatewayFunc) Checkout(ctx context.Context, req Request) (*Checkout, error) {
	return f(ctx, req)
}

// ── Sandbox ───────────────────────────────────────────────────────────────────
// Simulates provider latency and hands out a checkout link under baseURL.

type sandboxGateway struct {
	baseURL string
	delay   time.Duration
}

func NewSandboxGateway(baseURL string, delay time.Duration) Gateway {
	return &sandboxGateway{baseURL: strings.TrimRight(baseURL, "/"), delay: delay}
}

func (g *sandboxGateway) Checkout(ctx context.Context, req Request) (*Checkout, error) {
	if !req.Amount.IsPositive() {
		return nil, &DeclinedError{Reason: "amount must be greater than 0"}
	}

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("sandbox checkout: %w", ctx.Err())
		case <-timer.C:
		}
	}

	token := strconv.FormatUint(rand.Uint64(), 36)
	return &Checkout{
		Link:      g.baseURL + "/" + token,
		Reference: "SBX-" + req.OrderID,
	}, nil
}
