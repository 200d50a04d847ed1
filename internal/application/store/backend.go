package store

import (
	"context"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// Backend is the remote source of truth. Implementations map their failures
// onto shared.DomainError codes and validate every record they hand back.
type Backend interface {
	ListProducts(ctx context.Context) ([]sales.Product, error)
	ListSalesmen(ctx context.Context) ([]sales.Salesman, error)
	ListCustomers(ctx context.Context) ([]sales.Customer, error)
	ListSales(ctx context.Context) ([]sales.Sale, error)

	// Create, Update and Delete receive and return the concrete record type of kind.
	Create(ctx context.Context, kind sales.Kind, payload sales.Entity) (sales.Entity, error)
	Update(ctx context.Context, kind sales.Kind, id sales.ID, payload sales.Entity) (sales.Entity, error)
	Delete(ctx context.Context, kind sales.Kind, id sales.ID) error
}
