package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/filter"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
)

// ListQuery holds the filters the list screens submit
type ListQuery struct {
	Query      string `form:"q"`
	Status     string `form:"status"`
	SalesmanID string `form:"salesman_id"`
	Category   string `form:"category"`
	Region     string `form:"region"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
}

// Spec converts the query into a filter spec over the given equality
// fields and free-text search fields. Date bounds are validated here.
func (q ListQuery) Spec(equals map[string]string, search ...string) (filter.Spec, error) {
	var bounds [2]time.Time
	for i, d := range []string{q.StartDate, q.EndDate} {
		if d == "" {
			continue
		}
		day, err := sales.ParseDay(d)
		if err != nil {
			return filter.Spec{}, shared.NewValidationError(err.Error())
		}
		bounds[i] = day
	}
	if !bounds[0].IsZero() && !bounds[1].IsZero() && bounds[0].After(bounds[1]) {
		return filter.Spec{}, shared.NewValidationError("start_date must not be after end_date")
	}
	return filter.Spec{
		Equals: equals,
		From:   q.StartDate,
		To:     q.EndDate,
		Query:  q.Query,
		Fields: search,
	}, nil
}

// ProductRequest is the body of product create and update
type ProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	SKU         string          `json:"sku" binding:"max=100"`
	Category    string          `json:"category" binding:"max=100"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" binding:"min=0"`
	Status      string          `json:"status" binding:"omitempty,max=50"`
	Description string          `json:"description"`
}

// ToDomain converts the request to a product
func (r ProductRequest) ToDomain() sales.Product {
	return sales.Product{
		Name:        r.Name,
		SKU:         r.SKU,
		Category:    r.Category,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Status:      r.Status,
		Description: r.Description,
	}
}

// SalesmanRequest is the body of salesman create and update
type SalesmanRequest struct {
	Name     string           `json:"name" binding:"required,max=200"`
	Email    string           `json:"email" binding:"required,email"`
	Phone    string           `json:"phone" binding:"max=50"`
	Region   string           `json:"region" binding:"max=100"`
	Target   *decimal.Decimal `json:"target"`
	JoinDate string           `json:"joinDate"`
}

// ToDomain converts the request to a salesman
func (r SalesmanRequest) ToDomain() (sales.Salesman, error) {
	s := sales.Salesman{
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		Region: r.Region,
		Target: r.Target,
	}
	if r.JoinDate != "" {
		t, err := sales.ParseTimestamp(r.JoinDate)
		if err != nil {
			return sales.Salesman{}, shared.NewValidationError("salesman joinDate: " + err.Error())
		}
		s.JoinDate = t
	}
	return s, nil
}

// CustomerRequest is the body of customer create
type CustomerRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address"`
}

// ToDomain converts the request to a customer
func (r CustomerRequest) ToDomain() sales.Customer {
	return sales.Customer{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address}
}

// SaleRequest is the body of sale create and update. Amount may be omitted:
// on create it becomes unit price × quantity, on update the recorded amount
// is kept.
type SaleRequest struct {
	ProductID    string           `json:"productId" binding:"required"`
	SalesmanID   string           `json:"salesmanId"`
	CustomerName string           `json:"customerName"`
	Quantity     int              `json:"quantity" binding:"required,min=1"`
	Date         string           `json:"date"`
	Amount       *decimal.Decimal `json:"amount"`
	Status       string           `json:"status" binding:"omitempty,oneof=completed pending"`
	Region       string           `json:"region"`
	Notes        string           `json:"notes"`
}

// ToDomain converts the request to a sale. A missing date is left zero for
// the caller to fill.
func (r SaleRequest) ToDomain() (sales.Sale, error) {
	s := sales.Sale{
		ProductID:    sales.ID(r.ProductID),
		SalesmanID:   sales.ID(r.SalesmanID),
		CustomerName: r.CustomerName,
		Quantity:     r.Quantity,
		Status:       sales.Status(r.Status),
		Region:       r.Region,
		Notes:        r.Notes,
	}
	if r.Amount != nil {
		s.Amount = *r.Amount
	}
	if r.Date != "" {
		t, err := sales.ParseTimestamp(r.Date)
		if err != nil {
			return sales.Sale{}, shared.NewValidationError("sale date: " + err.Error())
		}
		s.Date = t
	}
	return s, nil
}

// AskRequest is the body of an assistant question
type AskRequest struct {
	Question string `json:"question" binding:"required,max=2000"`
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status   string             `json:"status"`
	Version  string             `json:"version"`
	Source   string             `json:"source"`
	LoadedAt *time.Time         `json:"loaded_at,omitempty"`
	Counts   map[sales.Kind]int `json:"counts"`
}
