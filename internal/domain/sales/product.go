package sales

import "github.com/shopspring/decimal"

// Product is an item in the company catalogue
type Product struct {
	ID          ID              `json:"id"`
	Name        string          `json:"name" validate:"required"`
	SKU         string          `json:"sku,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Status      string          `json:"status,omitempty"`
	Description string          `json:"description,omitempty"`
}

// EntityID implements Entity
func (p Product) EntityID() ID { return p.ID }

// EntityKind implements Entity
func (p Product) EntityKind() Kind { return KindProduct }

// Field implements Record
func (p Product) Field(name string) (string, bool) {
	switch name {
	case "id":
		return optional(string(p.ID))
	case "name":
		return optional(p.Name)
	case "sku":
		return optional(p.SKU)
	case "category":
		return optional(p.Category)
	case "status":
		return optional(p.Status)
	case "description":
		return optional(p.Description)
	}
	return "", false
}

// Day implements Record. Products are not dated.
func (p Product) Day() (string, bool) { return "", false }

// DisplayName returns the product name, or "Unknown" for a product that no longer resolves
func DisplayName(p *Product) string {
	if p == nil || p.Name == "" {
		return "Unknown"
	}
	return p.Name
}
