package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salesman is a member of the sales team. Target is the optional monthly revenue goal.
type Salesman struct {
	ID       ID               `json:"id"`
	Name     string           `json:"name" validate:"required"`
	Email    string           `json:"email" validate:"required,email"`
	Phone    string           `json:"phone,omitempty"`
	Region   string           `json:"region,omitempty"`
	Target   *decimal.Decimal `json:"target,omitempty" validate:"omitempty,gte=0"`
	JoinDate time.Time        `json:"joinDate"`
}

// EntityID implements Entity
func (s Salesman) EntityID() ID { return s.ID }

// EntityKind implements Entity
func (s Salesman) EntityKind() Kind { return KindSalesman }

// Field implements Record
func (s Salesman) Field(name string) (string, bool) {
	switch name {
	case "id":
		return optional(string(s.ID))
	case "name":
		return optional(s.Name)
	case "email":
		return optional(s.Email)
	case "phone":
		return optional(s.Phone)
	case "region":
		return optional(s.Region)
	}
	return "", false
}

// Day implements Record using the join date
func (s Salesman) Day() (string, bool) {
	if s.JoinDate.IsZero() {
		return "", false
	}
	return DayKey(s.JoinDate), true
}

// TargetOrZero returns the monthly target, or zero when none is set
func (s Salesman) TargetOrZero() decimal.Decimal {
	if s.Target == nil {
		return decimal.Zero
	}
	return *s.Target
}

// SalesmanName returns the salesman name, or "N/A" for a salesman that no longer resolves
func SalesmanName(s *Salesman) string {
	if s == nil || s.Name == "" {
		return "N/A"
	}
	return s.Name
}
