package catalog

import (
	"strings"

	"github.com/niklaus/b2b-portal/internal/modules/tier"
)

// VisibleProducts returns the products whose category the tier allows, in input order.
func VisibleProducts(all []*Product, tierID tier.ID) []*Product {
	t := tier.Resolve(tierID)
	out := make([]*Product, 0, len(all))
	for _, p := range all {
		if t.Allows(p.CategoryID) {
			out = append(out, p)
		}
	}
	return out
}

// VisibleCategories returns the master categories the tier allows, in master-list order.
func VisibleCategories(tierID tier.ID) []tier.Category {
	t := tier.Resolve(tierID)
	all := tier.Categories()
	out := make([]tier.Category, 0, len(all))
	for _, c := range all {
		if t.Allows(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// Query narrows a product list further. Zero fields match everything.
type Query struct {
	Search     string
	CategoryID tier.CategoryID
	ActiveOnly bool
}

// Narrow keeps the products matching every predicate of q.
func Narrow(products []*Product, q Query) []*Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		if q.ActiveOnly && !p.Active {
			continue
		}
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}
