package store

import (
	"context"
	"slices"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// normalize dereferences pointer records so the snapshot only holds values.
func normalize(e sales.Entity) sales.Entity {
	switch v := e.(type) {
	case *sales.Product:
		return *v
	case *sales.Salesman:
		return *v
	case *sales.Customer:
		return *v
	case *sales.Sale:
		return *v
	}
	return e
}

// The helpers below copy the affected collection, so snapshots handed out
// earlier never observe the change.

func appendEntity(snap sales.Snapshot, e sales.Entity) sales.Snapshot {
	switch v := normalize(e).(type) {
	case sales.Product:
		snap.Products = appendCopy(snap.Products, v)
	case sales.Salesman:
		snap.Salesmen = appendCopy(snap.Salesmen, v)
	case sales.Customer:
		snap.Customers = appendCopy(snap.Customers, v)
	case sales.Sale:
		snap.Sales = appendCopy(snap.Sales, v)
	}
	return snap
}

func replaceEntity(snap sales.Snapshot, id sales.ID, e sales.Entity) sales.Snapshot {
	switch v := normalize(e).(type) {
	case sales.Product:
		snap.Products = replaceCopy(snap.Products, id, v)
	case sales.Salesman:
		snap.Salesmen = replaceCopy(snap.Salesmen, id, v)
	case sales.Customer:
		snap.Customers = replaceCopy(snap.Customers, id, v)
	case sales.Sale:
		snap.Sales = replaceCopy(snap.Sales, id, v)
	}
	return snap
}

func removeEntity(snap sales.Snapshot, kind sales.Kind, id sales.ID) sales.Snapshot {
	switch kind {
	case sales.KindProduct:
		snap.Products = removeCopy(snap.Products, id)
	case sales.KindSalesman:
		snap.Salesmen = removeCopy(snap.Salesmen, id)
	case sales.KindCustomer:
		snap.Customers = removeCopy(snap.Customers, id)
	case sales.KindSale:
		snap.Sales = removeCopy(snap.Sales, id)
	}
	return snap
}

func appendCopy[T sales.Entity](items []T, v T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, v)
}

func replaceCopy[T sales.Entity](items []T, id sales.ID, v T) []T {
	i := slices.IndexFunc(items, func(item T) bool { return item.EntityID() == id })
	if i < 0 {
		return appendCopy(items, v)
	}
	out := slices.Clone(items)
	out[i] = v
	return out
}

func removeCopy[T sales.Entity](items []T, id sales.ID) []T {
	return slices.DeleteFunc(slices.Clone(items), func(item T) bool { return item.EntityID() == id })
}

func typed[T sales.Entity](e sales.Entity, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return e.(T), nil
}

// AddProduct creates a product
func (s *Store) AddProduct(ctx context.Context, p sales.Product) (sales.Product, error) {
	return typed[sales.Product](s.Add(ctx, sales.KindProduct, p))
}

// UpdateProduct replaces the product with id
func (s *Store) UpdateProduct(ctx context.Context, id sales.ID, p sales.Product) (sales.Product, error) {
	return typed[sales.Product](s.Update(ctx, sales.KindProduct, id, p))
}

// AddSalesman creates a salesman
func (s *Store) AddSalesman(ctx context.Context, sm sales.Salesman) (sales.Salesman, error) {
	return typed[sales.Salesman](s.Add(ctx, sales.KindSalesman, sm))
}

// UpdateSalesman replaces the salesman with id
func (s *Store) UpdateSalesman(ctx context.Context, id sales.ID, sm sales.Salesman) (sales.Salesman, error) {
	return typed[sales.Salesman](s.Update(ctx, sales.KindSalesman, id, sm))
}

// AddCustomer creates a customer. Customers are never updated.
func (s *Store) AddCustomer(ctx context.Context, c sales.Customer) (sales.Customer, error) {
	return typed[sales.Customer](s.Add(ctx, sales.KindCustomer, c))
}

// AddSale records a sale. Its amount is stored as given.
func (s *Store) AddSale(ctx context.Context, sale sales.Sale) (sales.Sale, error) {
	return typed[sales.Sale](s.Add(ctx, sales.KindSale, sale))
}

// UpdateSale replaces the sale with id
func (s *Store) UpdateSale(ctx context.Context, id sales.ID, sale sales.Sale) (sales.Sale, error) {
	return typed[sales.Sale](s.Update(ctx, sales.KindSale, id, sale))
}
