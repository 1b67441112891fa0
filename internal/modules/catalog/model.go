package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/niklaus/b2b-portal/internal/modules/tier"
)

// Product is an entry of the master catalog. Its CategoryID decides which
// tiers may see it.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	Image      string          `json:"image"`
	Category   string          `json:"category"`
	CategoryID tier.CategoryID `json:"category_id"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductRequest is the admin payload for creating or replacing a product.
type ProductRequest struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	Image      string          `json:"image"`
	Category   string          `json:"category"`
	CategoryID tier.CategoryID `json:"category_id"`
	Active     *bool           `json:"active,omitempty"`
}

// Storefront is the catalog as seen from one business unit.
type Storefront struct {
	Tier       tier.Tier       `json:"tier"`
	Categories []tier.Category `json:"categories"`
	Products   []*Product      `json:"products"`
}
