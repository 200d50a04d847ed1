package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
)

// Wire shapes use the backend's snake_case names. IDs arrive as integers and
// are kept as their decimal text.

const wireTimestamp = "2006-01-02T15:04:05"

// number is a decimal that goes on the wire as a bare JSON number.
type number struct{ decimal.Decimal }

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

func numberPtr(d *decimal.Decimal) *number {
	if d == nil {
		return nil
	}
	return &number{*d}
}

func decimalPtr(n *number) *decimal.Decimal {
	if n == nil {
		return nil
	}
	d := n.Decimal
	return &d
}

type wireProduct struct {
	ID          json.Number `json:"id,omitempty"`
	Name        string      `json:"name"`
	SKU         *string     `json:"sku"`
	Category    string      `json:"category"`
	Price       number      `json:"price"`
	Quantity    int         `json:"quantity"`
	Status      string      `json:"status,omitempty"`
	Description *string     `json:"description"`
}

type wireSalesman struct {
	ID          json.Number `json:"id,omitempty"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       *string     `json:"phone"`
	Region      *string     `json:"region"`
	Target      *number     `json:"target"`
	SalesTarget *number     `json:"sales_target,omitempty"`
	JoinDate    *string     `json:"joinDate"`
	CreatedAt   string      `json:"created_at,omitempty"`
}

type wireCustomer struct {
	ID      json.Number `json:"id,omitempty"`
	Name    string      `json:"name"`
	Email   *string     `json:"email"`
	Phone   *string     `json:"phone"`
	Address *string     `json:"address"`
}

type wireSale struct {
	ID           json.Number  `json:"id,omitempty"`
	ProductID    json.Number  `json:"product_id"`
	UserID       *json.Number `json:"user_id,omitempty"`
	CustomerName *string      `json:"customer_name"`
	Quantity     int          `json:"quantity"`
	Amount       number       `json:"amount"`
	Date         string       `json:"date,omitempty"`
	Status       string       `json:"status,omitempty"`
	Region       *string      `json:"region"`
	Notes        *string      `json:"notes"`
}

type wireCategory struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func idNumber(id sales.ID) (json.Number, error) {
	if id.IsZero() {
		return "", nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err != nil {
		return "", shared.NewValidationError(fmt.Sprintf("id %q is not a backend identifier", id))
	}
	return json.Number(id), nil
}

func (w wireProduct) domain() sales.Product {
	return sales.Product{
		ID:          sales.ID(w.ID),
		Name:        w.Name,
		SKU:         str(w.SKU),
		Category:    w.Category,
		Price:       w.Price.Decimal,
		Quantity:    w.Quantity,
		Status:      w.Status,
		Description: str(w.Description),
	}
}

func productWire(p sales.Product) wireProduct {
	return wireProduct{
		Name:        p.Name,
		SKU:         ptr(p.SKU),
		Category:    p.Category,
		Price:       number{p.Price},
		Quantity:    p.Quantity,
		Status:      p.Status,
		Description: ptr(p.Description),
	}
}

func (w wireSalesman) domain() sales.Salesman {
	sm := sales.Salesman{
		ID:     sales.ID(w.ID),
		Name:   w.Name,
		Email:  w.Email,
		Phone:  str(w.Phone),
		Region: str(w.Region),
		Target: decimalPtr(w.Target),
	}
	if sm.Target == nil {
		sm.Target = decimalPtr(w.SalesTarget)
	}
	for _, raw := range []string{str(w.JoinDate), w.CreatedAt} {
		if raw == "" {
			continue
		}
		if t, err := sales.ParseTimestamp(raw); err == nil {
			sm.JoinDate = t
			break
		}
	}
	return sm
}

func salesmanWire(sm sales.Salesman) wireSalesman {
	w := wireSalesman{
		Name:   sm.Name,
		Email:  sm.Email,
		Phone:  ptr(sm.Phone),
		Region: ptr(sm.Region),
		Target: numberPtr(sm.Target),
	}
	if !sm.JoinDate.IsZero() {
		w.JoinDate = ptr(sales.DayKey(sm.JoinDate))
	}
	return w
}

func (w wireCustomer) domain() sales.Customer {
	return sales.Customer{
		ID:      sales.ID(w.ID),
		Name:    w.Name,
		Email:   str(w.Email),
		Phone:   str(w.Phone),
		Address: str(w.Address),
	}
}

func customerWire(c sales.Customer) wireCustomer {
	return wireCustomer{Name: c.Name, Email: ptr(c.Email), Phone: ptr(c.Phone), Address: ptr(c.Address)}
}

func (w wireSale) domain() (sales.Sale, error) {
	s := sales.Sale{
		ID:           sales.ID(w.ID),
		ProductID:    sales.ID(w.ProductID),
		CustomerName: str(w.CustomerName),
		Quantity:     w.Quantity,
		Amount:       w.Amount.Decimal,
		Status:       sales.Status(strings.ToLower(w.Status)),
		Region:       str(w.Region),
		Notes:        str(w.Notes),
	}
	if w.UserID != nil {
		s.SalesmanID = sales.ID(*w.UserID)
	}
	if s.Status == "" {
		s.Status = sales.StatusCompleted
	}
	if w.Date != "" {
		t, err := sales.ParseTimestamp(w.Date)
		if err != nil {
			return sales.Sale{}, shared.NewValidationError(fmt.Sprintf("sale %s: %v", w.ID, err))
		}
		s.Date = t
	}
	return s, nil
}

func saleWire(s sales.Sale) (wireSale, error) {
	productID, err := idNumber(s.ProductID)
	if err != nil {
		return wireSale{}, err
	}
	w := wireSale{
		ProductID:    productID,
		CustomerName: ptr(s.CustomerName),
		Quantity:     s.Quantity,
		Amount:       number{s.Amount},
		Status:       string(s.Status),
		Region:       ptr(s.Region),
		Notes:        ptr(s.Notes),
	}
	if !s.SalesmanID.IsZero() {
		userID, err := idNumber(s.SalesmanID)
		if err != nil {
			return wireSale{}, err
		}
		w.UserID = &userID
	}
	if !s.Date.IsZero() {
		w.Date = s.Date.UTC().Format(wireTimestamp)
	}
	return w, nil
}

func (w wireCategory) domain() sales.Category {
	return sales.Category{ID: sales.ID(w.ID), Name: w.Name, Description: str(w.Description)}
}

// decodeAll converts a fetched collection and validates every record. One
// malformed record fails the whole fetch.
func decodeAll[W any, T sales.Entity](items []W, conv func(W) (T, error)) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, w := range items {
		v, err := conv(w)
		if err != nil {
			return nil, err
		}
		if err := sales.Validate(v); err != nil {
			return nil, fmt.Errorf("record %s: %w", v.EntityID(), err)
		}
		out = append(out, v)
	}
	return out, nil
}
