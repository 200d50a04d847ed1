package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/store"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/config"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/persistence/models"
)

var _ store.Backend = (*Backend)(nil)

func newTestDatabase(t *testing.T, companyID int64) *Database {
	t.Helper()
	db, err := Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          ":memory:",
		CompanyID:    companyID,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seed(t *testing.T, b *Backend) (sales.Product, sales.Salesman) {
	t.Helper()
	ctx := context.Background()

	p, err := b.Create(ctx, sales.KindProduct, sales.Product{
		Name:     "Widget",
		Category: "Tools",
		Price:    decimal.RequireFromString("12.5"),
		Quantity: 40,
	})
	require.NoError(t, err)

	target := decimal.NewFromInt(5000)
	s, err := b.Create(ctx, sales.KindSalesman, &sales.Salesman{
		Name:     "Alice",
		Email:    "alice@example.com",
		Region:   "North",
		Target:   &target,
		JoinDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	return p.(sales.Product), s.(sales.Salesman)
}

func TestBackend_CreateAndList(t *testing.T) {
	b := NewBackend(newTestDatabase(t, 0))
	ctx := context.Background()
	product, salesman := seed(t, b)

	assert.Equal(t, sales.ID("1"), product.ID)
	assert.Equal(t, "active", product.Status)

	products, err := b.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, "12.5", products[0].Price.String())
	assert.Equal(t, 40, products[0].Quantity)

	salesmen, err := b.ListSalesmen(ctx)
	require.NoError(t, err)
	require.Len(t, salesmen, 1)
	assert.Equal(t, salesman.ID, salesmen[0].ID)
	require.NotNil(t, salesmen[0].Target)
	assert.Equal(t, "5000", salesmen[0].Target.String())
	assert.Equal(t, "2023-06-01", sales.DayKey(salesmen[0].JoinDate))

	sale, err := b.Create(ctx, sales.KindSale, sales.Sale{
		ProductID:    product.ID,
		SalesmanID:   salesman.ID,
		CustomerName: "Acme",
		Quantity:     2,
		Amount:       decimal.NewFromInt(25),
		Date:         time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, sales.StatusCompleted, sale.(sales.Sale).Status)

	list, err := b.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, product.ID, list[0].ProductID)
	assert.Equal(t, salesman.ID, list[0].SalesmanID)
	assert.Equal(t, "Acme", list[0].CustomerName)
	assert.Equal(t, "25", list[0].Amount.String())
	assert.Equal(t, "2024-03-15", sales.DayKey(list[0].Date))
}

func TestBackend_ManagersAreNotSalesmen(t *testing.T) {
	db := newTestDatabase(t, 0)
	b := NewBackend(db)
	require.NoError(t, db.DB.Create(&models.UserModel{Email: "boss@example.com", FullName: "Boss", Role: "manager"}).Error)

	salesmen, err := b.ListSalesmen(context.Background())
	require.NoError(t, err)
	assert.Empty(t, salesmen)

	err = b.Delete(context.Background(), sales.KindSalesman, "1")
	assert.True(t, shared.IsNotFound(err))
}

func TestBackend_ListSalesBetween(t *testing.T) {
	b := NewBackend(newTestDatabase(t, 0))
	ctx := context.Background()
	product, _ := seed(t, b)

	for _, day := range []string{"2024-03-01", "2024-03-15", "2024-03-31", "2024-04-01"} {
		date, err := sales.ParseDay(day)
		require.NoError(t, err)
		_, err = b.Create(ctx, sales.KindSale, sales.Sale{
			ProductID: product.ID,
			Quantity:  1,
			Amount:    decimal.NewFromInt(10),
			Date:      date.Add(15 * time.Hour),
		})
		require.NoError(t, err)
	}

	list, err := b.ListSalesBetween(ctx, "2024-03-15", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-03-15", sales.DayKey(list[0].Date))
	assert.Equal(t, "2024-03-31", sales.DayKey(list[1].Date))
	assert.True(t, list[0].SalesmanID.IsZero())

	_, err = b.ListSalesBetween(ctx, "March", "")
	assert.True(t, shared.IsValidation(err))
}

func TestBackend_CreateValidation(t *testing.T) {
	b := NewBackend(newTestDatabase(t, 0))
	ctx := context.Background()
	product, _ := seed(t, b)

	t.Run("invalid payload", func(t *testing.T) {
		_, err := b.Create(ctx, sales.KindProduct, sales.Product{Price: decimal.NewFromInt(1)})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := b.Create(ctx, sales.KindSale, sales.Sale{ProductID: "99", Quantity: 1, Amount: decimal.NewFromInt(1)})
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
		assert.Contains(t, err.Error(), "99")
	})

	t.Run("unknown salesman", func(t *testing.T) {
		_, err := b.Create(ctx, sales.KindSale, sales.Sale{ProductID: product.ID, SalesmanID: "abc", Quantity: 1, Amount: decimal.NewFromInt(1)})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := b.Create(ctx, sales.KindSalesman, sales.Salesman{Name: "Copy", Email: "alice@example.com"})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("wrong payload type panics", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = b.Create(ctx, sales.KindSale, sales.Customer{Name: "x"})
		})
	})
}

func TestBackend_Update(t *testing.T) {
	db := newTestDatabase(t, 0)
	b := NewBackend(db)
	ctx := context.Background()
	product, salesman := seed(t, b)

	product.Price = decimal.NewFromInt(15)
	product.Name = "Widget Pro"
	updated, err := b.Update(ctx, sales.KindProduct, product.ID, product)
	require.NoError(t, err)
	assert.Equal(t, product.ID, updated.EntityID())
	assert.Equal(t, "Widget Pro", updated.(sales.Product).Name)

	products, err := b.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "15", products[0].Price.String())

	require.NoError(t, db.DB.Model(&models.UserModel{}).Where("id = ?", 1).Update("hashed_password", "secret").Error)
	salesman.Phone = "555-0100"
	salesman.JoinDate = time.Time{}
	_, err = b.Update(ctx, sales.KindSalesman, salesman.ID, salesman)
	require.NoError(t, err)

	var row models.UserModel
	require.NoError(t, db.DB.First(&row, 1).Error)
	require.NotNil(t, row.HashedPassword)
	assert.Equal(t, "secret", *row.HashedPassword)
	assert.Equal(t, "2023-06-01", sales.DayKey(row.CreatedAt.UTC()), "join date kept")
	require.NotNil(t, row.Phone)
	assert.Equal(t, "555-0100", *row.Phone)

	t.Run("customers cannot be updated", func(t *testing.T) {
		_, err := b.Update(ctx, sales.KindCustomer, "1", sales.Customer{Name: "x"})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := b.Update(ctx, sales.KindProduct, "42", product)
		assert.True(t, shared.IsNotFound(err))

		_, err = b.Update(ctx, sales.KindProduct, "not-a-number", product)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestBackend_Delete(t *testing.T) {
	b := NewBackend(newTestDatabase(t, 0))
	ctx := context.Background()

	c, err := b.Create(ctx, sales.KindCustomer, sales.Customer{Name: "Acme", Email: "ops@acme.test"})
	require.NoError(t, err)

	require.NoError(t, b.Delete(ctx, sales.KindCustomer, c.EntityID()))
	assert.True(t, shared.IsNotFound(b.Delete(ctx, sales.KindCustomer, c.EntityID())))

	customers, err := b.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestBackend_CompanyScope(t *testing.T) {
	db := newTestDatabase(t, 7)
	b := NewBackend(db)
	ctx := context.Background()

	other := int64(8)
	foreign := &models.ProductModel{Name: "Foreign", Category: "X", Status: "active"}
	foreign.CompanyID = &other
	require.NoError(t, db.DB.Create(foreign).Error)

	own, err := b.Create(ctx, sales.KindProduct, sales.Product{Name: "Own", Category: "Y"})
	require.NoError(t, err)

	products, err := b.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, own.EntityID(), products[0].ID)

	var row models.ProductModel
	require.NoError(t, db.DB.First(&row, "id = ?", string(own.EntityID())).Error)
	require.NotNil(t, row.CompanyID)
	assert.Equal(t, int64(7), *row.CompanyID)

	err = b.Delete(ctx, sales.KindProduct, sales.ID("1"))
	assert.True(t, shared.IsNotFound(err), "other company's row is invisible")

	_, err = b.Create(ctx, sales.KindSale, sales.Sale{ProductID: "1", Quantity: 1, Amount: decimal.NewFromInt(1)})
	assert.True(t, shared.IsValidation(err))
}

func TestBackend_Categories(t *testing.T) {
	db := newTestDatabase(t, 0)
	b := NewBackend(db)

	desc := "Hand tools"
	require.NoError(t, db.DB.Create(&models.CategoryModel{Name: "Tools", Description: &desc}).Error)
	require.NoError(t, db.DB.Create(&models.CategoryModel{Name: "Electronics"}).Error)

	cats, err := b.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Electronics", cats[0].Name)
	assert.Equal(t, "Hand tools", cats[1].Description)
}

func TestBackend_DatabaseFailureIsTransport(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	b := NewBackend(NewDatabase(gormDB, 3))

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE company_id = \$1`).
		WithArgs(int64(3)).
		WillReturnError(errors.New("connection reset by peer"))

	_, err = b.ListProducts(context.Background())
	require.Error(t, err)
	assert.True(t, shared.IsTransport(err))
	assert.Contains(t, err.Error(), "list products")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBError(t *testing.T) {
	assert.True(t, shared.IsNotFound(dbError(gorm.ErrRecordNotFound)))
	assert.True(t, shared.IsValidation(dbError(gorm.ErrDuplicatedKey)))
	assert.True(t, shared.IsValidation(dbError(gorm.ErrForeignKeyViolated)))
	assert.True(t, shared.IsTransport(dbError(context.DeadlineExceeded)))

	tagged := shared.NewValidationError("bad")
	assert.Same(t, tagged, dbError(tagged))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
