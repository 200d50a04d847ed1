package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status of a sale
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	return s == StatusCompleted || s == StatusPending
}

// Sale is one recorded transaction. Amount is fixed when the sale is created
// (unit price × quantity at that time) and is never recomputed from the
// product's current price.
type Sale struct {
	ID           ID              `json:"id"`
	ProductID    ID              `json:"productId" validate:"required"`
	SalesmanID   ID              `json:"salesmanId"`
	CustomerName string          `json:"customerName,omitempty"`
	Quantity     int             `json:"quantity" validate:"gt=0"`
	Date         time.Time       `json:"date" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"gte=0"`
	Status       Status          `json:"status" validate:"omitempty,oneof=completed pending"`
	Region       string          `json:"region,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// EntityID implements Entity
func (s Sale) EntityID() ID { return s.ID }

// EntityKind implements Entity
func (s Sale) EntityKind() Kind { return KindSale }

// Field implements Record
func (s Sale) Field(name string) (string, bool) {
	switch name {
	case "id":
		return optional(string(s.ID))
	case "productId", "product_id":
		return optional(string(s.ProductID))
	case "salesmanId", "salesman_id", "user_id":
		return optional(string(s.SalesmanID))
	case "customerName", "customer_name":
		return optional(s.CustomerName)
	case "status":
		return optional(string(s.Status))
	case "region":
		return optional(s.Region)
	case "notes":
		return optional(s.Notes)
	}
	return "", false
}

// Day implements Record
func (s Sale) Day() (string, bool) {
	if s.Date.IsZero() {
		return "", false
	}
	return DayKey(s.Date), true
}

// WithDefaults fills what a backend assigns to a new sale that omits it:
// the completed status and now as the sale date.
func (s Sale) WithDefaults(now time.Time) Sale {
	if s.Status == "" {
		s.Status = StatusCompleted
	}
	if s.Date.IsZero() {
		s.Date = now
	}
	return s
}

// Month returns the sale's calendar-month key
func (s Sale) Month() string {
	return MonthKey(s.Date)
}
