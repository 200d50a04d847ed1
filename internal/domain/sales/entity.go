// Package sales holds the four record types the portal works with and the
// read-only snapshot handed out by the entity store.
package sales

import "fmt"

// ID is an opaque identifier issued by the sales backend. The portal never generates one.
type ID string

// String returns the identifier as text
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is unset
func (id ID) IsZero() bool {
	return id == ""
}

// Kind names one of the entity collections
type Kind string

const (
	KindProduct  Kind = "product"
	KindSalesman Kind = "salesman"
	KindCustomer Kind = "customer"
	KindSale     Kind = "sale"
)

// Kinds lists every collection in load order
var Kinds = []Kind{KindProduct, KindSalesman, KindCustomer, KindSale}

// Valid reports whether k is a known collection
func (k Kind) Valid() bool {
	switch k {
	case KindProduct, KindSalesman, KindCustomer, KindSale:
		return true
	}
	return false
}

// MustValid panics on an unknown kind. Passing one is a programming error.
func (k Kind) MustValid() Kind {
	if !k.Valid() {
		panic(fmt.Sprintf("sales: unknown entity kind %q", string(k)))
	}
	return k
}

// Plural returns the collection name used in routes and messages
func (k Kind) Plural() string {
	switch k {
	case KindProduct:
		return "products"
	case KindSalesman:
		return "salesmen"
	case KindCustomer:
		return "customers"
	case KindSale:
		return "sales"
	}
	return string(k) + "s"
}

// ParseKind accepts either the singular or plural collection name
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if s == string(k) || s == k.Plural() {
			return k, true
		}
	}
	return "", false
}

// Entity is implemented by every record type
type Entity interface {
	EntityID() ID
	EntityKind() Kind
}

// Record is the read surface the filter engine uses: a named string field lookup
// and the calendar day the record is dated on, if any.
type Record interface {
	Field(name string) (string, bool)
	Day() (string, bool)
}

func optional(v string) (string, bool) {
	return v, v != ""
}
