package tier

import (
	"fmt"
	"slices"
)

// ID identifies a customer tier. A business unit's tier decides which
// product categories its representatives may order from.
type ID string

const (
	Basic   ID = "group_basic"
	Premium ID = "group_premium"
	VIP     ID = "group_vip"
)

// Default is the tier applied to any unknown or empty tier id.
const Default = Basic

// CategoryID identifies a catalog category.
type CategoryID string

const (
	CategoryProfessional CategoryID = "cat_prof"
	CategoryMaintenance  CategoryID = "cat_maint"
	CategoryTreatment    CategoryID = "cat_treat"
	CategoryKits         CategoryID = "cat_kits"
	CategoryExclusive    CategoryID = "cat_exclusive"
)

// Category is an entry of the master category list.
type Category struct {
	ID   CategoryID `json:"id"`
	Name string     `json:"name"`
}

// Tier is a resolved registry entry.
type Tier struct {
	ID      ID           `json:"id"`
	Label   string       `json:"label"`
	Color   string       `json:"color"`
	Allowed []CategoryID `json:"allowed_categories"`
}

// Allows reports whether products of category c are visible under t.
func (t Tier) Allows(c CategoryID) bool {
	return slices.Contains(t.Allowed, c)
}

var categories = []Category{
	{ID: CategoryProfessional, Name: "Linha Profissional"},
	{ID: CategoryMaintenance, Name: "Manutenção"},
	{ID: CategoryTreatment, Name: "Tratamento"},
	{ID: CategoryKits, Name: "Kits Exclusivos"},
	{ID: CategoryExclusive, Name: "Exclusivo VIP"},
}

var order = []ID{Basic, Premium, VIP}

var registry = map[ID]Tier{
	Basic: {
		ID:      Basic,
		Label:   "Lojista B2B",
		Color:   "blue",
		Allowed: []CategoryID{CategoryProfessional, CategoryMaintenance},
	},
	Premium: {
		ID:      Premium,
		Label:   "Distribuidor Ouro",
		Color:   "emerald",
		Allowed: []CategoryID{CategoryProfessional, CategoryMaintenance, CategoryTreatment, CategoryKits},
	},
	VIP: {
		ID:      VIP,
		Label:   "Parceiro VIP",
		Color:   "purple",
		Allowed: []CategoryID{CategoryProfessional, CategoryMaintenance, CategoryTreatment, CategoryKits, CategoryExclusive},
	},
}

func init() {
	if err := check(); err != nil {
		panic(err)
	}
}

// check verifies the registry covers every declared tier and only names known categories.
func check() error {
	if len(registry) != len(order) {
		return fmt.Errorf("tier registry has %d entries, %d tiers declared", len(registry), len(order))
	}
	for _, id := range order {
		t, ok := registry[id]
		if !ok {
			return fmt.Errorf("tier %q has no registry entry", id)
		}
		for _, c := range t.Allowed {
			if !KnownCategory(c) {
				return fmt.Errorf("tier %q allows unknown category %q", id, c)
			}
		}
	}
	if _, ok := registry[Default]; !ok {
		return fmt.Errorf("default tier %q has no registry entry", Default)
	}
	return nil
}

// Resolve returns the registry entry for id, or the Default tier when id is unknown.
func Resolve(id ID) Tier {
	if t, ok := registry[id]; ok {
		return t
	}
	return registry[Default]
}

// Lookup returns the registry entry for id without falling back.
func Lookup(id ID) (Tier, bool) {
	t, ok := registry[id]
	return t, ok
}

// All lists the tiers from the narrowest to the widest.
func All() []Tier {
	out := make([]Tier, 0, len(order))
	for _, id := range order {
		out = append(out, registry[id])
	}
	return out
}

// Categories returns a copy of the master category list.
func Categories() []Category {
	return slices.Clone(categories)
}

// KnownCategory reports whether c is in the master list.
func KnownCategory(c CategoryID) bool {
	for _, cat := range categories {
		if cat.ID == c {
			return true
		}
	}
	return false
}
