package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/niklaus/b2b-portal/internal/modules/catalog"
)

// Line is a product snapshot taken when it was first added, plus a quantity of at least 1.
type Line struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Add returns lines with one more unit of p: the existing line is incremented,
// otherwise a new line with quantity 1 is appended. lines is not modified.
func Add(lines []Line, p catalog.Product) []Line {
	out := slices.Clone(lines)
	for i := range out {
		if out[i].ID == p.ID {
			out[i].Quantity++
			return out
		}
	}
	return append(out, Line{Product: p, Quantity: 1})
}

// Adjust returns lines with the quantity of productID changed by delta, never below 1.
// An unknown productID leaves lines as they are.
func Adjust(lines []Line, productID string, delta int) []Line {
	out := slices.Clone(lines)
	for i := range out {
		if out[i].ID == productID {
			out[i].Quantity = max(1, out[i].Quantity+delta)
		}
	}
	return out
}

// Remove returns lines without productID.
func Remove(lines []Line, productID string) []Line {
	return slices.DeleteFunc(slices.Clone(lines), func(l Line) bool { return l.ID == productID })
}

// Total sums price times quantity over lines.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the number of units across lines.
func Count(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func contains(lines []Line, productID string) bool {
	return slices.ContainsFunc(lines, func(l Line) bool { return l.ID == productID })
}
