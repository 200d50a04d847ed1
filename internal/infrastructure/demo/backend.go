// Package demo provides an in-memory sales backend filled with generated
// data, so the portal can run without the real sales service.
package demo

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
)

// Seeding sizes for the smaller collections
const (
	ProductCount  = 12
	SalesmanCount = 6
	CustomerCount = 15
)

var regions = []string{"North", "South", "East", "West"}

// Backend keeps the four collections in memory. It implements store.Backend
// and is safe for concurrent use.
type Backend struct {
	mu        sync.Mutex
	nextID    int64
	products  []sales.Product
	salesmen  []sales.Salesman
	customers []sales.Customer
	sales     []sales.Sale
}

// NewBackend creates an empty backend
func NewBackend() *Backend {
	return &Backend{}
}

// Seed generates a deterministic data set for seed, with saleCount sales
// spread over the twelve months before now.
func Seed(seed int64, saleCount int, now time.Time) *Backend {
	f := gofakeit.New(uint64(seed))
	b := NewBackend()

	for range ProductCount {
		price := decimal.NewFromFloat(f.Price(5, 500)).Round(2)
		b.products = append(b.products, sales.Product{
			ID:          b.id(),
			Name:        f.ProductName(),
			SKU:         fmt.Sprintf("SKU-%05d", f.IntRange(1, 99999)),
			Category:    f.ProductCategory(),
			Price:       price,
			Quantity:    f.IntRange(0, 250),
			Status:      "active",
			Description: f.ProductDescription(),
		})
	}

	for range SalesmanCount {
		target := decimal.NewFromInt(int64(f.IntRange(20, 80)) * 1000)
		b.salesmen = append(b.salesmen, sales.Salesman{
			ID:       b.id(),
			Name:     f.Name(),
			Email:    f.Email(),
			Phone:    f.Phone(),
			Region:   f.RandomString(regions),
			Target:   &target,
			JoinDate: f.DateRange(now.AddDate(-3, 0, 0), now.AddDate(-1, 0, 0)).UTC(),
		})
	}

	for range CustomerCount {
		b.customers = append(b.customers, sales.Customer{
			ID:      b.id(),
			Name:    f.Company(),
			Email:   f.Email(),
			Phone:   f.Phone(),
			Address: f.Address().Address,
		})
	}

	start := now.AddDate(-1, 0, 0)
	for range saleCount {
		p := b.products[f.IntRange(0, len(b.products)-1)]
		s := b.salesmen[f.IntRange(0, len(b.salesmen)-1)]
		c := b.customers[f.IntRange(0, len(b.customers)-1)]
		qty := f.IntRange(1, 10)
		status := sales.StatusCompleted
		if f.IntRange(1, 100) <= 15 {
			status = sales.StatusPending
		}
		b.sales = append(b.sales, sales.Sale{
			ID:           b.id(),
			ProductID:    p.ID,
			SalesmanID:   s.ID,
			CustomerName: c.Name,
			Quantity:     qty,
			Date:         f.DateRange(start, now).UTC(),
			Amount:       p.Price.Mul(decimal.NewFromInt(int64(qty))),
			Status:       status,
			Region:       s.Region,
		})
	}
	slices.SortStableFunc(b.sales, func(x, y sales.Sale) int { return x.Date.Compare(y.Date) })
	return b
}

func (b *Backend) id() sales.ID {
	b.nextID++
	return sales.ID(strconv.FormatInt(b.nextID, 10))
}

// ListProducts implements store.Backend
func (b *Backend) ListProducts(ctx context.Context) ([]sales.Product, error) {
	return list(ctx, b, b.products)
}

// ListSalesmen implements store.Backend
func (b *Backend) ListSalesmen(ctx context.Context) ([]sales.Salesman, error) {
	return list(ctx, b, b.salesmen)
}

// ListCustomers implements store.Backend
func (b *Backend) ListCustomers(ctx context.Context) ([]sales.Customer, error) {
	return list(ctx, b, b.customers)
}

// ListSales implements store.Backend
func (b *Backend) ListSales(ctx context.Context) ([]sales.Sale, error) {
	return list(ctx, b, b.sales)
}

// Categories returns the distinct product categories in order of first appearance
func (b *Backend) Categories(ctx context.Context) ([]sales.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, shared.NewTransportError(err.Error())
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []sales.Category
	seen := make(map[string]bool)
	for _, p := range b.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, sales.Category{ID: sales.ID(strconv.Itoa(len(out) + 1)), Name: p.Category})
	}
	return out, nil
}

func list[T any](ctx context.Context, b *Backend, items []T) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, shared.NewTransportError(err.Error())
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(items), nil
}

// Create implements store.Backend. The backend issues the id.
func (b *Backend) Create(ctx context.Context, kind sales.Kind, payload sales.Entity) (sales.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, shared.NewTransportError(err.Error())
	}
	entity := value(kind, payload)
	if s, ok := entity.(sales.Sale); ok {
		entity = s.WithDefaults(time.Now().UTC())
	}
	if err := sales.Validate(entity); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch p := entity.(type) {
	case sales.Product:
		p.ID = b.id()
		b.products = append(b.products, p)
		return p, nil
	case sales.Salesman:
		p.ID = b.id()
		if p.JoinDate.IsZero() {
			p.JoinDate = time.Now().UTC()
		}
		b.salesmen = append(b.salesmen, p)
		return p, nil
	case sales.Customer:
		p.ID = b.id()
		b.customers = append(b.customers, p)
		return p, nil
	case sales.Sale:
		if err := b.checkRefs(p); err != nil {
			return nil, err
		}
		p.ID = b.id()
		b.sales = append(b.sales, p)
		return p, nil
	}
	return nil, nil
}

// Update implements store.Backend. Customers cannot be updated.
func (b *Backend) Update(ctx context.Context, kind sales.Kind, id sales.ID, payload sales.Entity) (sales.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, shared.NewTransportError(err.Error())
	}
	if kind == sales.KindCustomer {
		return nil, shared.NewValidationError("customers cannot be updated")
	}
	if err := sales.Validate(payload); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	var (
		out sales.Entity
		err error
	)
	switch p := value(kind, payload).(type) {
	case sales.Product:
		p.ID = id
		out, err = p, replace(b.products, kind, p)
	case sales.Salesman:
		p.ID = id
		out, err = p, replace(b.salesmen, kind, p)
	case sales.Sale:
		if err := b.checkRefs(p); err != nil {
			return nil, err
		}
		p.ID = id
		if p.Status == "" {
			p.Status = sales.StatusCompleted
		}
		out, err = p, replace(b.sales, kind, p)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete implements store.Backend
func (b *Backend) Delete(ctx context.Context, kind sales.Kind, id sales.ID) error {
	if err := ctx.Err(); err != nil {
		return shared.NewTransportError(err.Error())
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	var removed bool
	switch kind.MustValid() {
	case sales.KindProduct:
		b.products, removed = remove(b.products, id)
	case sales.KindSalesman:
		b.salesmen, removed = remove(b.salesmen, id)
	case sales.KindCustomer:
		b.customers, removed = remove(b.customers, id)
	case sales.KindSale:
		b.sales, removed = remove(b.sales, id)
	}
	if !removed {
		return notFound(kind, id)
	}
	return nil
}

func (b *Backend) checkRefs(s sales.Sale) error {
	if !slices.ContainsFunc(b.products, func(p sales.Product) bool { return p.ID == s.ProductID }) {
		return shared.NewValidationError(fmt.Sprintf("sale productId %q does not exist", s.ProductID))
	}
	if !s.SalesmanID.IsZero() && !slices.ContainsFunc(b.salesmen, func(m sales.Salesman) bool { return m.ID == s.SalesmanID }) {
		return shared.NewValidationError(fmt.Sprintf("sale salesmanId %q does not exist", s.SalesmanID))
	}
	return nil
}

func replace[T sales.Entity](items []T, kind sales.Kind, v T) error {
	i := slices.IndexFunc(items, func(e T) bool { return e.EntityID() == v.EntityID() })
	if i < 0 {
		return notFound(kind, v.EntityID())
	}
	items[i] = v
	return nil
}

func remove[T sales.Entity](items []T, id sales.ID) ([]T, bool) {
	i := slices.IndexFunc(items, func(e T) bool { return e.EntityID() == id })
	if i < 0 {
		return items, false
	}
	return slices.Delete(items, i, i+1), true
}

// value normalises a pointer payload. A payload of another kind is a
// programming error.
func value(kind sales.Kind, payload sales.Entity) sales.Entity {
	var out sales.Entity = payload
	switch p := payload.(type) {
	case *sales.Product:
		out = *p
	case *sales.Salesman:
		out = *p
	case *sales.Customer:
		out = *p
	case *sales.Sale:
		out = *p
	}
	if out.EntityKind() != kind.MustValid() {
		panic(fmt.Sprintf("demo: %T is not a %s", payload, kind))
	}
	return out
}

func notFound(kind sales.Kind, id sales.ID) error {
	return shared.NewNotFoundError(fmt.Sprintf("%s %q not found", kind, id))
}
