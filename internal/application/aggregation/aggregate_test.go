package aggregation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

func d(s string) time.Time {
	t, err := sales.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func sale(id, product, salesman string, qty int, amount int64, date string) sales.Sale {
	return sales.Sale{
		ID:         sales.ID(id),
		ProductID:  sales.ID(product),
		SalesmanID: sales.ID(salesman),
		Quantity:   qty,
		Amount:     decimal.NewFromInt(amount),
		Date:       d(date),
		Status:     sales.StatusCompleted,
	}
}

func fixture() ([]sales.Sale, []sales.Product, []sales.Salesman) {
	products := []sales.Product{
		{ID: "p1", Name: "Widget", Category: "A", Price: decimal.NewFromInt(10)},
		{ID: "p2", Name: "Gadget", Category: "B", Price: decimal.NewFromInt(25)},
	}
	salesmen := []sales.Salesman{
		{ID: "s1", Name: "Alice"},
		{ID: "s2", Name: "Bob"},
		{ID: "s3", Name: "Carol"},
	}
	list := []sales.Sale{
		sale("1", "p1", "s2", 2, 20, "2024-03-01"),
		sale("2", "p2", "s1", 1, 25, "2024-03-15"),
		sale("3", "p1", "s1", 3, 30, "2024-04-02"),
		sale("4", "gone", "s3", 5, 50, "2024-04-20"),
	}
	return list, products, salesmen
}

func TestAggregate_SumInvariant(t *testing.T) {
	list, products, _ := fixture()
	total := Total(list)

	keyFns := map[string]KeyFunc{
		"salesman": BySalesman,
		"product":  ByProduct,
		"day":      ByDay,
		"month":    ByMonth,
	}
	for name, fn := range keyFns {
		t.Run(name, func(t *testing.T) {
			sum := Metrics{}
			for _, g := range Aggregate(list, fn) {
				sum = sum.Plus(g.Metrics)
			}
			assert.True(t, total.Amount.Equal(sum.Amount))
			assert.Equal(t, total.Count, sum.Count)
			assert.Equal(t, total.Quantity, sum.Quantity)
		})
	}

	t.Run("category excludes unresolved products", func(t *testing.T) {
		sum := decimal.Zero
		for _, g := range Aggregate(list, ByCategory(NewProductIndex(products))) {
			sum = sum.Add(g.Amount)
		}
		assert.Equal(t, "75", sum.String())
		assert.Equal(t, "125", total.Amount.String())
	})
}

func TestAggregate_FirstAppearanceOrder(t *testing.T) {
	list, _, _ := fixture()
	groups := Aggregate(list, BySalesman)

	require.Len(t, groups, 3)
	assert.Equal(t, "s2", groups[0].Key)
	assert.Equal(t, "s1", groups[1].Key)
	assert.Equal(t, "55", groups[1].Amount.String())
	assert.Equal(t, int64(2), groups[1].Count)
}

func TestMetrics_Average(t *testing.T) {
	assert.True(t, Metrics{}.Average().IsZero())

	m := Metrics{Amount: decimal.NewFromInt(90), Count: 4}
	assert.Equal(t, "22.5", m.Average().String())
}

func TestCountByStatus(t *testing.T) {
	list, _, _ := fixture()
	list[0].Status = sales.StatusPending

	b := CountByStatus(list)
	assert.Equal(t, int64(3), b.Completed)
	assert.Equal(t, int64(1), b.Pending)
}

func TestTop(t *testing.T) {
	rows := []int{5, 4, 3, 2, 1}

	assert.Equal(t, []int{5, 4, 3}, Top(rows, 3))
	assert.Equal(t, rows, Top(rows, 10))
	assert.Empty(t, Top(rows, 0))
	assert.Equal(t, []int{5, 4, 3, 2, 1}, rows, "input untouched")
}
