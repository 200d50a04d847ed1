package sales

// Customer is a buyer known to the company. Contact fields are optional.
type Customer struct {
	ID      ID     `json:"id"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// EntityID implements Entity
func (c Customer) EntityID() ID { return c.ID }

// EntityKind implements Entity
func (c Customer) EntityKind() Kind { return KindCustomer }

// Field implements Record
func (c Customer) Field(name string) (string, bool) {
	switch name {
	case "id":
		return optional(string(c.ID))
	case "name":
		return optional(c.Name)
	case "email":
		return optional(c.Email)
	case "phone":
		return optional(c.Phone)
	case "address":
		return optional(c.Address)
	}
	return "", false
}

// Day implements Record. Customers are not dated.
func (c Customer) Day() (string, bool) { return "", false }
