package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/persistence/models"
)

// Backend reads and writes the four collections straight from the sales
// database. It implements store.Backend.
type Backend struct {
	db *Database
}

// NewBackend creates a SQL backend on db
func NewBackend(db *Database) *Backend {
	return &Backend{db: db}
}

// ListProducts implements store.Backend
func (b *Backend) ListProducts(ctx context.Context) ([]sales.Product, error) {
	var rows []models.ProductModel
	if err := b.db.Scoped(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, listError(sales.KindProduct, err)
	}
	return convert(rows, models.ProductModel.ToDomain), nil
}

// ListSalesmen implements store.Backend. Salesmen are the users with the salesman role.
func (b *Backend) ListSalesmen(ctx context.Context) ([]sales.Salesman, error) {
	var rows []models.UserModel
	err := b.db.Scoped(ctx).Where("role = ?", models.RoleSalesman).Order("id").Find(&rows).Error
	if err != nil {
		return nil, listError(sales.KindSalesman, err)
	}
	return convert(rows, models.UserModel.ToDomain), nil
}

// ListCustomers implements store.Backend
func (b *Backend) ListCustomers(ctx context.Context) ([]sales.Customer, error) {
	var rows []models.CustomerModel
	if err := b.db.Scoped(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, listError(sales.KindCustomer, err)
	}
	return convert(rows, models.CustomerModel.ToDomain), nil
}

// ListSales implements store.Backend
func (b *Backend) ListSales(ctx context.Context) ([]sales.Sale, error) {
	return b.ListSalesBetween(ctx, "", "")
}

// ListSalesBetween returns sales dated within the optional inclusive
// YYYY-MM-DD bounds, oldest first.
func (b *Backend) ListSalesBetween(ctx context.Context, startDate, endDate string) ([]sales.Sale, error) {
	tx := b.db.Scoped(ctx)
	if startDate != "" {
		start, err := sales.ParseDay(startDate)
		if err != nil {
			return nil, shared.NewValidationError(fmt.Sprintf("invalid start date %q", startDate))
		}
		tx = tx.Where("date >= ?", start.UTC())
	}
	if endDate != "" {
		end, err := sales.ParseDay(endDate)
		if err != nil {
			return nil, shared.NewValidationError(fmt.Sprintf("invalid end date %q", endDate))
		}
		tx = tx.Where("date < ?", end.AddDate(0, 0, 1).UTC())
	}

	var rows []models.SaleModel
	if err := tx.Order("date").Order("id").Find(&rows).Error; err != nil {
		return nil, listError(sales.KindSale, err)
	}
	return convert(rows, models.SaleModel.ToDomain), nil
}

// Categories lists the product categories by name
func (b *Backend) Categories(ctx context.Context) ([]sales.Category, error) {
	var rows []models.CategoryModel
	if err := b.db.Scoped(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", dbError(err))
	}
	return convert(rows, models.CategoryModel.ToDomain), nil
}

// Create implements store.Backend
func (b *Backend) Create(ctx context.Context, kind sales.Kind, payload sales.Entity) (sales.Entity, error) {
	entity := deref(kind, payload)
	if s, ok := entity.(sales.Sale); ok {
		entity = s.WithDefaults(time.Now().UTC())
	}
	if err := sales.Validate(entity); err != nil {
		return nil, err
	}

	switch p := entity.(type) {
	case sales.Product:
		m := models.ProductFromDomain(p)
		return insert(ctx, b, m, (*models.ProductModel).ToDomain)
	case sales.Salesman:
		m := models.SalesmanFromDomain(p)
		return insert(ctx, b, m, (*models.UserModel).ToDomain)
	case sales.Customer:
		m := models.CustomerFromDomain(p)
		return insert(ctx, b, m, (*models.CustomerModel).ToDomain)
	case sales.Sale:
		m, err := b.saleRow(ctx, p)
		if err != nil {
			return nil, err
		}
		return insert(ctx, b, m, (*models.SaleModel).ToDomain)
	}
	return nil, nil
}

// Update implements store.Backend. Customers cannot be updated.
func (b *Backend) Update(ctx context.Context, kind sales.Kind, id sales.ID, payload sales.Entity) (sales.Entity, error) {
	if kind == sales.KindCustomer {
		return nil, shared.NewValidationError("customers cannot be updated")
	}
	key, err := rowID(kind, id)
	if err != nil {
		return nil, err
	}
	if err := sales.Validate(payload); err != nil {
		return nil, err
	}

	switch p := deref(kind, payload).(type) {
	case sales.Product:
		var cur models.ProductModel
		if err := b.find(ctx, kind, key, &cur); err != nil {
			return nil, err
		}
		m := models.ProductFromDomain(p)
		m.Base = cur.Base
		return save(ctx, b, m, (*models.ProductModel).ToDomain)
	case sales.Salesman:
		var cur models.UserModel
		if err := b.find(ctx, kind, key, &cur); err != nil {
			return nil, err
		}
		m := models.SalesmanFromDomain(p)
		joined := m.CreatedAt
		m.Base = cur.Base
		if !joined.IsZero() {
			m.CreatedAt = joined
		}
		m.HashedPassword = cur.HashedPassword
		m.EmployeeID = cur.EmployeeID
		return save(ctx, b, m, (*models.UserModel).ToDomain)
	case sales.Sale:
		var cur models.SaleModel
		if err := b.find(ctx, kind, key, &cur); err != nil {
			return nil, err
		}
		m, err := b.saleRow(ctx, p)
		if err != nil {
			return nil, err
		}
		m.Base = cur.Base
		return save(ctx, b, m, (*models.SaleModel).ToDomain)
	}
	return nil, nil
}

// Delete implements store.Backend
func (b *Backend) Delete(ctx context.Context, kind sales.Kind, id sales.ID) error {
	key, err := rowID(kind, id)
	if err != nil {
		return err
	}

	tx := b.db.Scoped(ctx)
	var model any
	switch kind {
	case sales.KindProduct:
		model = &models.ProductModel{}
	case sales.KindSalesman:
		model = &models.UserModel{}
		tx = tx.Where("role = ?", models.RoleSalesman)
	case sales.KindCustomer:
		model = &models.CustomerModel{}
	case sales.KindSale:
		model = &models.SaleModel{}
	}

	res := tx.Delete(model, key)
	if res.Error != nil {
		return dbError(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(kind, id)
	}
	return nil
}

// saleRow resolves the product and salesman a sale references within the
// configured company.
func (b *Backend) saleRow(ctx context.Context, s sales.Sale) (*models.SaleModel, error) {
	productID, err := strconv.ParseInt(string(s.ProductID), 10, 64)
	if err != nil {
		return nil, shared.NewValidationError(fmt.Sprintf("sale productId %q does not exist", s.ProductID))
	}
	if err := b.find(ctx, sales.KindProduct, productID, &models.ProductModel{}); err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewValidationError(fmt.Sprintf("sale productId %q does not exist", s.ProductID))
		}
		return nil, err
	}

	var userID *int64
	if !s.SalesmanID.IsZero() {
		uid, err := strconv.ParseInt(string(s.SalesmanID), 10, 64)
		if err != nil {
			return nil, shared.NewValidationError(fmt.Sprintf("sale salesmanId %q does not exist", s.SalesmanID))
		}
		if err := b.find(ctx, sales.KindSalesman, uid, &models.UserModel{}); err != nil {
			if shared.IsNotFound(err) {
				return nil, shared.NewValidationError(fmt.Sprintf("sale salesmanId %q does not exist", s.SalesmanID))
			}
			return nil, err
		}
		userID = &uid
	}
	return models.SaleFromDomain(s, productID, userID), nil
}

func (b *Backend) find(ctx context.Context, kind sales.Kind, key int64, dest any) error {
	tx := b.db.Scoped(ctx)
	if kind == sales.KindSalesman {
		tx = tx.Where("role = ?", models.RoleSalesman)
	}
	if err := tx.First(dest, key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(kind, sales.ID(strconv.FormatInt(key, 10)))
		}
		return dbError(err)
	}
	return nil
}

func insert[M models.CompanyScoped, E sales.Entity](ctx context.Context, b *Backend, m M, to func(M) E) (sales.Entity, error) {
	m.SetCompany(b.db.CompanyID())
	if err := b.db.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, dbError(err)
	}
	return to(m), nil
}

func save[M any, E sales.Entity](ctx context.Context, b *Backend, m M, to func(M) E) (sales.Entity, error) {
	if err := b.db.DB.WithContext(ctx).Save(m).Error; err != nil {
		return nil, dbError(err)
	}
	return to(m), nil
}

// deref normalises a payload to the value type of kind. A payload of another
// type is a programming error.
func deref(kind sales.Kind, payload sales.Entity) sales.Entity {
	var out sales.Entity
	switch p := payload.(type) {
	case *sales.Product:
		out = *p
	case *sales.Salesman:
		out = *p
	case *sales.Customer:
		out = *p
	case *sales.Sale:
		out = *p
	default:
		out = payload
	}
	if out.EntityKind() != kind.MustValid() {
		panic(fmt.Sprintf("persistence: %T is not a %s", payload, kind))
	}
	return out
}

func rowID(kind sales.Kind, id sales.ID) (int64, error) {
	key, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || key <= 0 {
		return 0, notFound(kind, id)
	}
	return key, nil
}

func notFound(kind sales.Kind, id sales.ID) error {
	return shared.NewNotFoundError(fmt.Sprintf("%s %q not found", kind, id))
}

func listError(kind sales.Kind, err error) error {
	return fmt.Errorf("list %s: %w", kind.Plural(), dbError(err))
}

// dbError maps a gorm error onto a domain error code
func dbError(err error) error {
	switch {
	case shared.CodeOf(err) != "":
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError("")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewValidationError("a record with the same unique value already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewValidationError("the record references a row that does not exist")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return shared.NewTransportError("The sales database did not answer in time")
	}
	return shared.NewTransportError(fmt.Sprintf("The sales database failed: %v", err))
}

func convert[M any, E any](rows []M, fn func(M) E) []E {
	out := make([]E, len(rows))
	for i, r := range rows {
		out[i] = fn(r)
	}
	return out
}
