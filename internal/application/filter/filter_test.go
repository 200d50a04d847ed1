package filter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

func day(s string) time.Time {
	t, err := sales.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func testSales() []sales.Sale {
	return []sales.Sale{
		{ID: "1", ProductID: "10", SalesmanID: "1", Quantity: 1, Amount: decimal.NewFromInt(10), Date: day("2024-03-01"), Status: sales.StatusCompleted, CustomerName: "Acme Traders"},
		{ID: "2", ProductID: "11", SalesmanID: "2", Quantity: 2, Amount: decimal.NewFromInt(20), Date: day("2024-03-05").Add(23 * time.Hour), Status: sales.StatusPending},
		{ID: "3", ProductID: "10", SalesmanID: "1", Quantity: 3, Amount: decimal.NewFromInt(30), Date: day("2024-03-10"), Status: sales.StatusPending, CustomerName: "Globex"},
		{ID: "4", ProductID: "99", SalesmanID: "2", Quantity: 4, Amount: decimal.NewFromInt(40), Date: day("2024-04-01"), Status: sales.StatusCompleted},
	}
}

func ids(items []sales.Sale) []sales.ID {
	out := make([]sales.ID, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}

func TestApply_Identity(t *testing.T) {
	in := testSales()

	out := Apply(in)
	assert.Equal(t, in, out)

	out = Apply(in, Spec{}.Clauses()...)
	assert.Equal(t, in, out)

	out[0].Notes = "mutated"
	assert.Empty(t, in[0].Notes, "result must not alias the input")
}

func TestEquals(t *testing.T) {
	in := testSales()

	assert.Equal(t, []sales.ID{"1", "3"}, ids(Apply(in, BySalesman("1"))))
	assert.Equal(t, []sales.ID{"2", "3"}, ids(Apply(in, ByStatus(sales.StatusPending))))
	assert.Len(t, Apply(in, Equals("status", "")), 4, "empty value matches all")
}

func TestEquals_MissingFieldExcludes(t *testing.T) {
	in := testSales()

	out := Apply(in, Equals("customerName", "Globex"))
	assert.Equal(t, []sales.ID{"3"}, ids(out))

	out = Apply(in, Equals("unknown_field", "x"))
	assert.Empty(t, out)
}

func TestBetween(t *testing.T) {
	in := testSales()

	tests := []struct {
		name     string
		from, to string
		want     []sales.ID
	}{
		{"inclusive both ends", "2024-03-05", "2024-03-10", []sales.ID{"2", "3"}},
		{"time of day ignored", "2024-03-05", "2024-03-05", []sales.ID{"2"}},
		{"open end", "2024-03-10", "", []sales.ID{"3", "4"}},
		{"open start", "", "2024-03-01", []sales.ID{"1"}},
		{"unset", "", "", []sales.ID{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(in, Between(tt.from, tt.to))))
		})
	}
}

func TestBetween_UndatedRecordsExcluded(t *testing.T) {
	people := []sales.Salesman{
		{ID: "1", Name: "Alice", JoinDate: day("2023-01-10")},
		{ID: "2", Name: "Bob"},
	}

	out := Apply(people, Between("2023-01-01", ""))
	assert.Len(t, out, 1)
	assert.Equal(t, sales.ID("1"), out[0].ID)
}

func TestContains(t *testing.T) {
	people := []sales.Salesman{
		{ID: "1", Name: "Alice Smith", Email: "alice@example.com"},
		{ID: "2", Name: "Bob Stone", Email: "bob@EXAMPLE.org"},
		{ID: "3", Name: "Jürgen Groß", Email: "jg@example.de"},
	}

	assert.Len(t, Apply(people, Contains("SMITH")), 1)
	assert.Len(t, Apply(people, Contains("example.org", "name", "email")), 1)
	assert.Len(t, Apply(people, Contains("example", "email")), 3)
	assert.Len(t, Apply(people, Contains("")), 3)
	assert.Len(t, Apply(people, Contains("GROSS")), 1, "unicode case folding")
	assert.Empty(t, Apply(people, Contains("alice", "phone")), "field absent on every record")
}

func TestConjunction(t *testing.T) {
	in := testSales()
	a := BySalesman("2")
	b := Between("2024-03-01", "2024-03-31")

	chained := Apply(Apply(in, a), b)
	combined := Apply(in, a, b)

	assert.Equal(t, combined, chained)
	assert.Equal(t, []sales.ID{"2"}, ids(combined))
	assert.Equal(t, combined, Apply(in, And([]Clause{a}, []Clause{b})...))
}

func TestSpec(t *testing.T) {
	in := testSales()

	spec := Spec{
		Equals: map[string]string{"status": "completed", "salesmanId": ""},
		From:   "2024-03-01",
		Query:  "acme",
		Fields: []string{"customerName"},
	}
	assert.False(t, spec.IsEmpty())
	assert.Equal(t, []sales.ID{"1"}, ids(Apply(in, spec.Clauses()...)))

	assert.True(t, Spec{Equals: map[string]string{"status": ""}}.IsEmpty())
	assert.Equal(t, 4, Count(in, Spec{}.Clauses()...))
}

func TestByCategory(t *testing.T) {
	products := []sales.Product{
		{ID: "10", Name: "Widget", Category: "A"},
		{ID: "11", Name: "Gadget", Category: "B"},
	}
	in := testSales()

	assert.Equal(t, []sales.ID{"1", "3"}, ids(Apply(in, ByCategory(products, "A"))))
	assert.Len(t, Apply(in, ByCategory(products, "")), 4)
	assert.Len(t, Apply(products, ByCategory(products, "B")), 1)
}
