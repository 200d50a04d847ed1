package filter

import (
	"sort"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// Spec is the declarative form of a filter as the list screens submit it.
type Spec struct {
	Equals map[string]string
	From   string
	To     string
	Query  string
	Fields []string
}

// IsEmpty reports whether the spec narrows nothing
func (s Spec) IsEmpty() bool {
	for _, v := range s.Equals {
		if v != "" {
			return false
		}
	}
	return s.From == "" && s.To == "" && s.Query == ""
}

// Clauses expands the spec into its conjunction
func (s Spec) Clauses() []Clause {
	clauses := make([]Clause, 0, len(s.Equals)+2)

	fields := make([]string, 0, len(s.Equals))
	for f := range s.Equals {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		clauses = append(clauses, Equals(f, s.Equals[f]))
	}

	clauses = append(clauses, Between(s.From, s.To))
	clauses = append(clauses, Contains(s.Query, s.Fields...))
	return clauses
}

// And combines two clause lists into one conjunction
func And(a, b []Clause) []Clause {
	out := make([]Clause, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// BySalesman matches sales made by the given salesman
func BySalesman(id sales.ID) Clause {
	return Equals("salesmanId", string(id))
}

// ByStatus matches sales in the given status
func ByStatus(status sales.Status) Clause {
	return Equals("status", string(status))
}

// ByRegion matches records in the given region
func ByRegion(region string) Clause {
	return Equals("region", region)
}

// ByCategory matches sales whose product belongs to category. A sale whose
// product no longer resolves has no category and is excluded. Non-sale records
// are matched on their own category field.
func ByCategory(products []sales.Product, category string) Clause {
	if category == "" {
		return matchAll
	}
	index := make(map[sales.ID]string, len(products))
	for _, p := range products {
		index[p.ID] = p.Category
	}
	return ClauseFunc(func(r sales.Record) bool {
		if s, ok := r.(sales.Sale); ok {
			c, found := index[s.ProductID]
			return found && c == category
		}
		v, ok := r.Field("category")
		return ok && v == category
	})
}
