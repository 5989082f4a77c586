package catalog

import "context"

// Product is one catalog entry. JSON field names follow the storefront wire
// format the frontend consumes.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"nome"`
	Description string  `json:"descricao"`
	Price       float64 `json:"preco"`
	Category    string  `json:"categoria"`
	Image       string  `json:"imagem"`
	Stock       int     `json:"estoque"`
}

// CategoryAll is the filter sentinel that matches every product.
const CategoryAll = "all"

type Store interface {
	Ping(ctx context.Context) error

	// List returns products in catalog order. An empty category or
	// CategoryAll disables filtering; otherwise the match is a
	// case-sensitive equality on Category.
	List(ctx context.Context, category string) ([]Product, error)

	Get(ctx context.Context, id int) (Product, bool, error)

	// Categories returns the distinct category values in first-occurrence
	// catalog order.
	Categories(ctx context.Context) ([]string, error)
}
