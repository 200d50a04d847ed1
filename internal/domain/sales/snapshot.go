package sales

// Snapshot is a point-in-time copy of the four collections. Consumers may
// freely reslice or sort it; the store never shares its backing arrays.
type Snapshot struct {
	Products  []Product  `json:"products"`
	Salesmen  []Salesman `json:"salesmen"`
	Customers []Customer `json:"customers"`
	Sales     []Sale     `json:"sales"`
}

// Clone returns a deep-enough copy: new slices, same immutable values.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Products:  append([]Product(nil), s.Products...),
		Salesmen:  append([]Salesman(nil), s.Salesmen...),
		Customers: append([]Customer(nil), s.Customers...),
		Sales:     append([]Sale(nil), s.Sales...),
	}
}

// WithSales returns a snapshot sharing the reference collections but holding a different sale set.
func (s Snapshot) WithSales(sales []Sale) Snapshot {
	s.Sales = sales
	return s
}

// Len returns the number of records of the given kind
func (s Snapshot) Len(kind Kind) int {
	switch kind.MustValid() {
	case KindProduct:
		return len(s.Products)
	case KindSalesman:
		return len(s.Salesmen)
	case KindCustomer:
		return len(s.Customers)
	default:
		return len(s.Sales)
	}
}
