package sales

// Category is a product category managed on the backend. Products reference
// categories by name.
type Category struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
