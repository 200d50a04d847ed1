// Package models maps the sales database tables onto gorm structs and
// converts them to and from the domain records.
//
// The schema is owned by the sales backend. AutoMigrate only runs for tests
// and local SQLite sandboxes.
package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// RoleSalesman marks the users rows that are members of the sales team
const RoleSalesman = "salesman"

// CompanyScoped is implemented by every table carrying a company_id column
type CompanyScoped interface {
	SetCompany(id int64)
}

// Base holds the columns shared by all sales tables
type Base struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CompanyID *int64    `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// SetCompany implements CompanyScoped. Zero leaves the column NULL.
func (b *Base) SetCompany(id int64) {
	if id == 0 {
		b.CompanyID = nil
		return
	}
	b.CompanyID = &id
}

// DomainID renders the integer key as the portal's opaque id
func (b Base) DomainID() sales.ID {
	if b.ID == 0 {
		return ""
	}
	return sales.ID(strconv.FormatInt(b.ID, 10))
}

// ProductModel maps the products table
type ProductModel struct {
	Base
	Name        string          `gorm:"index"`
	SKU         *string         `gorm:"column:sku;index"`
	Category    string
	Price       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity    int             `gorm:"default:0"`
	Status      string          `gorm:"default:active"`
	Description *string
}

// TableName returns the table name for gorm
func (ProductModel) TableName() string { return "products" }

// ToDomain converts the row to a domain product
func (m ProductModel) ToDomain() sales.Product {
	return sales.Product{
		ID:          m.DomainID(),
		Name:        m.Name,
		SKU:         deref(m.SKU),
		Category:    m.Category,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Status:      m.Status,
		Description: deref(m.Description),
	}
}

// ProductFromDomain builds a row from a domain product. The id is not copied.
func ProductFromDomain(p sales.Product) *ProductModel {
	status := p.Status
	if status == "" {
		status = "active"
	}
	return &ProductModel{
		Name:        p.Name,
		SKU:         nullable(p.SKU),
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Status:      status,
		Description: nullable(p.Description),
	}
}

// UserModel maps the users table. Only rows with role salesman are read.
type UserModel struct {
	Base
	Email          string `gorm:"uniqueIndex"`
	HashedPassword *string
	FullName       string
	Role           string `gorm:"default:manager;index"`
	EmployeeID     *string
	Phone          *string
	Region         *string
	SalesTarget    *int64
}

// TableName returns the table name for gorm
func (UserModel) TableName() string { return "users" }

// ToDomain converts the row to a domain salesman. The join date is the
// account creation time.
func (m UserModel) ToDomain() sales.Salesman {
	s := sales.Salesman{
		ID:       m.DomainID(),
		Name:     m.FullName,
		Email:    m.Email,
		Phone:    deref(m.Phone),
		Region:   deref(m.Region),
		JoinDate: m.CreatedAt.UTC(),
	}
	if m.SalesTarget != nil {
		t := decimal.NewFromInt(*m.SalesTarget)
		s.Target = &t
	}
	return s
}

// SalesmanFromDomain builds a salesman row. Targets are stored as whole
// currency units.
func SalesmanFromDomain(s sales.Salesman) *UserModel {
	m := &UserModel{
		Email:    s.Email,
		FullName: s.Name,
		Role:     RoleSalesman,
		Phone:    nullable(s.Phone),
		Region:   nullable(s.Region),
	}
	if s.Target != nil {
		t := s.Target.Round(0).IntPart()
		m.SalesTarget = &t
	}
	if !s.JoinDate.IsZero() {
		m.CreatedAt = s.JoinDate.UTC()
	}
	return m
}

// CustomerModel maps the customers table
type CustomerModel struct {
	Base
	Name    string `gorm:"index"`
	Email   *string
	Phone   *string
	Address *string
}

// TableName returns the table name for gorm
func (CustomerModel) TableName() string { return "customers" }

// ToDomain converts the row to a domain customer
func (m CustomerModel) ToDomain() sales.Customer {
	return sales.Customer{
		ID:      m.DomainID(),
		Name:    m.Name,
		Email:   deref(m.Email),
		Phone:   deref(m.Phone),
		Address: deref(m.Address),
	}
}

// CustomerFromDomain builds a customer row
func CustomerFromDomain(c sales.Customer) *CustomerModel {
	return &CustomerModel{
		Name:    c.Name,
		Email:   nullable(c.Email),
		Phone:   nullable(c.Phone),
		Address: nullable(c.Address),
	}
}

// SaleModel maps the sales table. The table has no status column; every
// stored sale is completed.
type SaleModel struct {
	Base
	ProductID    int64           `gorm:"index"`
	UserID       *int64          `gorm:"index"`
	Quantity     int
	Amount       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Date         time.Time       `gorm:"index"`
	CustomerName *string
	Notes        *string
	Region       *string
}

// TableName returns the table name for gorm
func (SaleModel) TableName() string { return "sales" }

// ToDomain converts the row to a domain sale
func (m SaleModel) ToDomain() sales.Sale {
	s := sales.Sale{
		ID:           m.DomainID(),
		ProductID:    sales.ID(strconv.FormatInt(m.ProductID, 10)),
		CustomerName: deref(m.CustomerName),
		Quantity:     m.Quantity,
		Date:         m.Date.UTC(),
		Amount:       m.Amount,
		Status:       sales.StatusCompleted,
		Region:       deref(m.Region),
		Notes:        deref(m.Notes),
	}
	if m.UserID != nil {
		s.SalesmanID = sales.ID(strconv.FormatInt(*m.UserID, 10))
	}
	return s
}

// SaleFromDomain builds a sale row. productID and userID are the parsed
// integer keys of the referenced rows; userID is nil for an unattributed sale.
func SaleFromDomain(s sales.Sale, productID int64, userID *int64) *SaleModel {
	date := s.Date
	if date.IsZero() {
		date = time.Now()
	}
	return &SaleModel{
		ProductID:    productID,
		UserID:       userID,
		Quantity:     s.Quantity,
		Amount:       s.Amount,
		Date:         date.UTC(),
		CustomerName: nullable(s.CustomerName),
		Notes:        nullable(s.Notes),
		Region:       nullable(s.Region),
	}
}

// CategoryModel maps the categories table
type CategoryModel struct {
	Base
	Name        string `gorm:"uniqueIndex"`
	Description *string
}

// TableName returns the table name for gorm
func (CategoryModel) TableName() string { return "categories" }

// ToDomain converts the row to a domain category
func (m CategoryModel) ToDomain() sales.Category {
	return sales.Category{ID: m.DomainID(), Name: m.Name, Description: deref(m.Description)}
}

// All lists every model, for AutoMigrate
func All() []any {
	return []any{&ProductModel{}, &UserModel{}, &CustomerModel{}, &SaleModel{}, &CategoryModel{}}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
