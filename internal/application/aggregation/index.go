package aggregation

import "github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"

// ProductIndex resolves product ids in O(1). Build it once per aggregation pass.
type ProductIndex map[sales.ID]sales.Product

// NewProductIndex indexes products by id
func NewProductIndex(products []sales.Product) ProductIndex {
	idx := make(ProductIndex, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx
}

// Lookup returns the product for id, or nil when it no longer exists
func (idx ProductIndex) Lookup(id sales.ID) *sales.Product {
	p, ok := idx[id]
	if !ok {
		return nil
	}
	return &p
}

// SalesmanIndex resolves salesman ids in O(1)
type SalesmanIndex map[sales.ID]sales.Salesman

// NewSalesmanIndex indexes salesmen by id
func NewSalesmanIndex(salesmen []sales.Salesman) SalesmanIndex {
	idx := make(SalesmanIndex, len(salesmen))
	for _, s := range salesmen {
		idx[s.ID] = s
	}
	return idx
}

// Lookup returns the salesman for id, or nil when it no longer exists
func (idx SalesmanIndex) Lookup(id sales.ID) *sales.Salesman {
	s, ok := idx[id]
	if !ok {
		return nil
	}
	return &s
}
