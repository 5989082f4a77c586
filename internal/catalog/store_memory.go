package catalog

import "context"

// MemStore holds the catalog in process memory. The slice is never mutated
// after construction, so reads need no locking.
type MemStore struct {
	products []Product
}

func NewMemStore() *MemStore {
	return &MemStore{products: seedProducts()}
}

// NewMemStoreWith builds a store over the given products, mainly for tests.
func NewMemStoreWith(products []Product) *MemStore {
	return &MemStore{products: products}
}

func seedProducts() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Café com Canela Cremoso",
			Description: "Um delicioso café cremoso, aromatizado com canela e servido com um pau de canela para um toque especial.",
			Price:       18.0,
			Category:    "bebidas",
			Image:       "cafe-canela-cremoso.jpeg",
			Stock:       25,
		},
		{
			ID:          2,
			Name:        "Mocha Gelado",
			Description: "Mocha gelado com café espresso, leite vaporizado, chantilly e calda de chocolate, servido com gelo.",
			Price:       16.5,
			Category:    "bebidas",
			Image:       "Mocha-Gelado.jpeg",
			Stock:       30,
		},
		{
			ID:          3,
			Name:        "Chocolate Quente Cremoso",
			Description: "Delicioso chocolate quente cremoso, coberto com chantilly e raspas de chocolate.",
			Price:       18.5,
			Category:    "bebidas",
			Image:       "chocolate-quente-cremoso.jpeg",
			Stock:       20,
		},
		{
			ID:          4,
			Name:        "Esfihas fechadas",
			Description: "Esfihas fechadas com massa folhada, recheio de carne moída, queijo e molho de tomate, servidas em 3 unidades.",
			Price:       8.5,
			Category:    "salgados",
			Image:       "Esfihas-fechadas.jpeg",
			Stock:       25,
		},
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context, category string) ([]Product, error) {
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if category == "" || category == CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id int) (Product, bool, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}

func (s *MemStore) Categories(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{}, len(s.products))
	out := make([]string, 0, len(s.products))
	for _, p := range s.products {
		if _, dup := seen[p.Category]; dup {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out, nil
}
