package unit

import (
	"time"

	"github.com/niklaus/b2b-portal/internal/modules/tier"
)

// BusinessUnit is a billing and shipping entity a representative places orders for.
type BusinessUnit struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	LegalName        string    `json:"legal_name"`
	TaxID            string    `json:"tax_id"`
	ResponsibleTaxID string    `json:"responsible_tax_id,omitempty"`
	Distributor      string    `json:"distributor,omitempty"`
	ContactEmail     string    `json:"contact_email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	PostalCode       string    `json:"postal_code,omitempty"`
	Street           string    `json:"street,omitempty"`
	Number           string    `json:"number,omitempty"`
	District         string    `json:"district,omitempty"`
	City             string    `json:"city,omitempty"`
	State            string    `json:"state,omitempty"`
	Complement       string    `json:"complement,omitempty"`
	TierID           tier.ID   `json:"tier_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Tier resolves the unit's tier, falling back to the default tier.
func (u *BusinessUnit) Tier() tier.Tier {
	return tier.Resolve(u.TierID)
}

// UnitRequest is the administrator payload for creating or editing a unit.
type UnitRequest struct {
	Name             string  `json:"name"`
	LegalName        string  `json:"legal_name"`
	TaxID            string  `json:"tax_id"`
	ResponsibleTaxID string  `json:"responsible_tax_id"`
	Distributor      string  `json:"distributor"`
	ContactEmail     string  `json:"contact_email"`
	Phone            string  `json:"phone"`
	PostalCode       string  `json:"postal_code"`
	Street           string  `json:"street"`
	Number           string  `json:"number"`
	District         string  `json:"district"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	Complement       string  `json:"complement"`
	TierID           tier.ID `json:"tier_id"`
}
