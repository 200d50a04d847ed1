package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
)

func collectionPath(kind sales.Kind) string {
	return "/api/" + kind.MustValid().Plural()
}

func itemPath(kind sales.Kind, id sales.ID) (string, error) {
	if _, err := idNumber(id); err != nil || id.IsZero() {
		return "", shared.NewNotFoundError(fmt.Sprintf("%s %q not found", kind, id))
	}
	return collectionPath(kind) + "/" + url.PathEscape(string(id)), nil
}

func route(kind sales.Kind, item bool) string {
	if item {
		return collectionPath(kind) + "/{id}"
	}
	return collectionPath(kind)
}

// ListProducts implements store.Backend
func (c *Client) ListProducts(ctx context.Context) ([]sales.Product, error) {
	var items []wireProduct
	if err := c.get(ctx, sales.KindProduct, nil, &items); err != nil {
		return nil, err
	}
	return decodeAll(items, func(w wireProduct) (sales.Product, error) { return w.domain(), nil })
}

// ListSalesmen implements store.Backend
func (c *Client) ListSalesmen(ctx context.Context) ([]sales.Salesman, error) {
	var items []wireSalesman
	if err := c.get(ctx, sales.KindSalesman, nil, &items); err != nil {
		return nil, err
	}
	return decodeAll(items, func(w wireSalesman) (sales.Salesman, error) { return w.domain(), nil })
}

// ListCustomers implements store.Backend
func (c *Client) ListCustomers(ctx context.Context) ([]sales.Customer, error) {
	var items []wireCustomer
	if err := c.get(ctx, sales.KindCustomer, nil, &items); err != nil {
		return nil, err
	}
	return decodeAll(items, func(w wireCustomer) (sales.Customer, error) { return w.domain(), nil })
}

// ListSales implements store.Backend
func (c *Client) ListSales(ctx context.Context) ([]sales.Sale, error) {
	return c.ListSalesBetween(ctx, "", "")
}

// ListSalesBetween fetches sales dated within the optional YYYY-MM-DD bounds;
// the backend applies the filter.
func (c *Client) ListSalesBetween(ctx context.Context, startDate, endDate string) ([]sales.Sale, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}
	var items []wireSale
	if err := c.get(ctx, sales.KindSale, q, &items); err != nil {
		return nil, err
	}
	return decodeAll(items, wireSale.domain)
}

func (c *Client) get(ctx context.Context, kind sales.Kind, q url.Values, out any) error {
	path := collectionPath(kind)
	err := c.do(ctx, request{method: http.MethodGet, path: path, route: path, query: q}, out)
	if err != nil {
		return fmt.Errorf("list %s: %w", kind.Plural(), err)
	}
	return nil
}

// Create implements store.Backend
func (c *Client) Create(ctx context.Context, kind sales.Kind, payload sales.Entity) (sales.Entity, error) {
	body, err := encode(kind, payload)
	if err != nil {
		return nil, err
	}
	path := collectionPath(kind)
	return c.mutate(ctx, kind, request{method: http.MethodPost, path: path, route: path, body: body})
}

// Update implements store.Backend. Customers have no update endpoint.
func (c *Client) Update(ctx context.Context, kind sales.Kind, id sales.ID, payload sales.Entity) (sales.Entity, error) {
	if kind == sales.KindCustomer {
		return nil, shared.NewValidationError("customers cannot be updated")
	}
	body, err := encode(kind, payload)
	if err != nil {
		return nil, err
	}
	path, err := itemPath(kind, id)
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, kind, request{method: http.MethodPut, path: path, route: route(kind, true), body: body})
}

// Delete implements store.Backend
func (c *Client) Delete(ctx context.Context, kind sales.Kind, id sales.ID) error {
	path, err := itemPath(kind, id)
	if err != nil {
		return err
	}
	return c.do(ctx, request{method: http.MethodDelete, path: path, route: route(kind, true)}, nil)
}

func (c *Client) mutate(ctx context.Context, kind sales.Kind, req request) (sales.Entity, error) {
	var (
		entity sales.Entity
		err    error
	)
	switch kind {
	case sales.KindProduct:
		var w wireProduct
		if err = c.do(ctx, req, &w); err == nil {
			entity = w.domain()
		}
	case sales.KindSalesman:
		var w wireSalesman
		if err = c.do(ctx, req, &w); err == nil {
			entity = w.domain()
		}
	case sales.KindCustomer:
		var w wireCustomer
		if err = c.do(ctx, req, &w); err == nil {
			entity = w.domain()
		}
	case sales.KindSale:
		var w wireSale
		if err = c.do(ctx, req, &w); err == nil {
			entity, err = w.domain()
		}
	}
	if err != nil {
		return nil, err
	}
	if entity.EntityID().IsZero() {
		return nil, shared.NewTransportError(fmt.Sprintf("backend returned a %s without an id", kind))
	}
	if err := sales.Validate(entity); err != nil {
		return nil, fmt.Errorf("%s response: %w", kind, err)
	}
	return entity, nil
}

// encode converts a domain payload to its wire shape. A payload of the
// wrong type for kind is a programming error.
func encode(kind sales.Kind, payload sales.Entity) (any, error) {
	switch p := payload.(type) {
	case sales.Product:
		return productWire(p), nil
	case *sales.Product:
		return productWire(*p), nil
	case sales.Salesman:
		return salesmanWire(p), nil
	case *sales.Salesman:
		return salesmanWire(*p), nil
	case sales.Customer:
		return customerWire(p), nil
	case *sales.Customer:
		return customerWire(*p), nil
	case sales.Sale:
		return saleWire(p)
	case *sales.Sale:
		return saleWire(*p)
	}
	panic(fmt.Sprintf("client: cannot encode %T as %s", payload, kind))
}
