package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/filter"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/store"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/dto"
)

// CategoryLister lists the categories managed on the backend
type CategoryLister interface {
	Categories(ctx context.Context) ([]sales.Category, error)
}

// EntityHandler serves the four collections from the store
type EntityHandler struct {
	BaseHandler
	store      *store.Store
	categories CategoryLister
	onChange   func()
	now        func() time.Time
}

// EntityOption configures an EntityHandler
type EntityOption func(*EntityHandler)

// WithCategories enables GET /categories
func WithCategories(l CategoryLister) EntityOption {
	return func(h *EntityHandler) { h.categories = l }
}

// OnChange registers fn to run after every accepted mutation
func OnChange(fn func()) EntityOption {
	return func(h *EntityHandler) { h.onChange = fn }
}

// WithEntityClock sets the clock that dates sales submitted without a date
func WithEntityClock(now func() time.Time) EntityOption {
	return func(h *EntityHandler) { h.now = now }
}

// NewEntityHandler creates a new EntityHandler
func NewEntityHandler(s *store.Store, opts ...EntityOption) *EntityHandler {
	h := &EntityHandler{
		store:    s,
		onChange: func() {},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes implements router.RouteRegistrar
func (h *EntityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("", h.ListProducts)
	products.POST("", h.CreateProduct)
	products.PUT("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.remove(sales.KindProduct))

	salesmen := rg.Group("/salesmen")
	salesmen.GET("", h.ListSalesmen)
	salesmen.POST("", h.CreateSalesman)
	salesmen.PUT("/:id", h.UpdateSalesman)
	salesmen.DELETE("/:id", h.remove(sales.KindSalesman))

	customers := rg.Group("/customers")
	customers.GET("", h.ListCustomers)
	customers.POST("", h.CreateCustomer)
	customers.DELETE("/:id", h.remove(sales.KindCustomer))

	sale := rg.Group("/sales")
	sale.GET("", h.ListSales)
	sale.POST("", h.CreateSale)
	sale.PUT("/:id", h.UpdateSale)
	sale.DELETE("/:id", h.remove(sales.KindSale))

	if h.categories != nil {
		rg.GET("/categories", h.ListCategories)
	}
}

func respondList[T sales.Record](h *EntityHandler, c *gin.Context, items []T, clauses []filter.Clause) {
	out := filter.Apply(items, clauses...)
	h.List(c, out, len(items), len(out))
}

// query binds the list filters. Undated collections ignore the date bounds.
func (h *EntityHandler) query(c *gin.Context, dated bool) (dto.ListQuery, bool) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return q, false
	}
	if !dated {
		q.StartDate, q.EndDate = "", ""
	}
	return q, true
}

// ListProducts filters products by category, status and free text
func (h *EntityHandler) ListProducts(c *gin.Context) {
	q, ok := h.query(c, false)
	if !ok {
		return
	}
	spec, err := q.Spec(map[string]string{"category": q.Category, "status": q.Status},
		"name", "sku", "category", "description")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondList(h, c, h.store.Snapshot().Products, spec.Clauses())
}

// ListSalesmen filters salesmen by region, join date and free text
func (h *EntityHandler) ListSalesmen(c *gin.Context) {
	q, ok := h.query(c, true)
	if !ok {
		return
	}
	spec, err := q.Spec(map[string]string{"region": q.Region}, "name", "email", "phone", "region")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondList(h, c, h.store.Snapshot().Salesmen, spec.Clauses())
}

// ListCustomers searches customers
func (h *EntityHandler) ListCustomers(c *gin.Context) {
	q, ok := h.query(c, false)
	if !ok {
		return
	}
	spec, err := q.Spec(nil, "name", "email", "phone", "address")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	respondList(h, c, h.store.Snapshot().Customers, spec.Clauses())
}

// ListSales filters sales by status, salesman, region, product category and date
func (h *EntityHandler) ListSales(c *gin.Context) {
	q, ok := h.query(c, true)
	if !ok {
		return
	}
	spec, err := q.Spec(map[string]string{
		"status":     q.Status,
		"salesmanId": q.SalesmanID,
		"region":     q.Region,
	}, "customerName", "region", "notes")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	snap := h.store.Snapshot()
	clauses := filter.And(spec.Clauses(), []filter.Clause{filter.ByCategory(snap.Products, q.Category)})
	respondList(h, c, snap.Sales, clauses)
}

// ListCategories returns the backend's categories
func (h *EntityHandler) ListCategories(c *gin.Context) {
	list, err := h.categories.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// CreateProduct adds a product
func (h *EntityHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.store.AddProduct(c.Request.Context(), req.ToDomain())
	h.created(c, p, err)
}

// UpdateProduct replaces a product
func (h *EntityHandler) UpdateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.store.UpdateProduct(c.Request.Context(), sales.ID(c.Param("id")), req.ToDomain())
	h.updated(c, p, err)
}

// CreateSalesman adds a salesman
func (h *EntityHandler) CreateSalesman(c *gin.Context) {
	var req dto.SalesmanRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sm, err := req.ToDomain()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sm, err = h.store.AddSalesman(c.Request.Context(), sm)
	h.created(c, sm, err)
}

// UpdateSalesman replaces a salesman
func (h *EntityHandler) UpdateSalesman(c *gin.Context) {
	var req dto.SalesmanRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sm, err := req.ToDomain()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sm, err = h.store.UpdateSalesman(c.Request.Context(), sales.ID(c.Param("id")), sm)
	h.updated(c, sm, err)
}

// CreateCustomer adds a customer
func (h *EntityHandler) CreateCustomer(c *gin.Context) {
	var req dto.CustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}
	cu, err := h.store.AddCustomer(c.Request.Context(), req.ToDomain())
	h.created(c, cu, err)
}

// CreateSale records a sale. Without an amount it is priced at the
// product's current unit price; without a date it is dated now.
func (h *EntityHandler) CreateSale(c *gin.Context) {
	var req dto.SaleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sale, err := req.ToDomain()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	snap := h.store.Snapshot()
	if req.Amount == nil {
		if sale.Amount, err = price(snap, sale); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	if sale.Date.IsZero() {
		sale.Date = h.now()
	}
	sale, err = h.store.AddSale(c.Request.Context(), sale)
	h.created(c, sale, err)
}

// UpdateSale replaces a sale. Omitted amount and date keep the recorded
// values; the amount is never re-priced for a sale already known.
func (h *EntityHandler) UpdateSale(c *gin.Context) {
	var req dto.SaleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sale, err := req.ToDomain()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id := sales.ID(c.Param("id"))
	snap := h.store.Snapshot()
	recorded, known := findSale(snap, id)
	if req.Amount == nil {
		if known {
			sale.Amount = recorded.Amount
		} else if sale.Amount, err = price(snap, sale); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	if sale.Date.IsZero() {
		if known {
			sale.Date = recorded.Date
		} else {
			sale.Date = h.now()
		}
	}
	sale, err = h.store.UpdateSale(c.Request.Context(), id, sale)
	h.updated(c, sale, err)
}

func (h *EntityHandler) remove(kind sales.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.store.Remove(c.Request.Context(), kind, sales.ID(c.Param("id"))); err != nil {
			h.HandleError(c, err)
			return
		}
		h.onChange()
		h.NoContent(c)
	}
}

func (h *EntityHandler) created(c *gin.Context, data any, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.onChange()
	h.Created(c, data)
}

func (h *EntityHandler) updated(c *gin.Context, data any, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.onChange()
	h.Success(c, data)
}

// price is unit price × quantity of the sale's product as currently loaded
func price(snap sales.Snapshot, sale sales.Sale) (decimal.Decimal, error) {
	for _, p := range snap.Products {
		if p.ID == sale.ProductID {
			return p.Price.Mul(decimal.NewFromInt(int64(sale.Quantity))), nil
		}
	}
	return decimal.Zero, shared.NewValidationError(fmt.Sprintf("sale productId %q does not exist", sale.ProductID))
}

func findSale(snap sales.Snapshot, id sales.ID) (sales.Sale, bool) {
	for _, s := range snap.Sales {
		if s.ID == id {
			return s, true
		}
	}
	return sales.Sale{}, false
}
