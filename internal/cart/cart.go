package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"Cafeteria/internal/catalog"
)

var (
	ErrProductNotFound   = errors.New("produto não encontrado")
	ErrItemNotFound      = errors.New("item não encontrado no carrinho")
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrEmptyCart         = errors.New("carrinho vazio")
)

// Line is one product selection in the cart. Product is a snapshot taken at
// insertion time; later catalog changes do not propagate into it.
type Line struct {
	ProductID int             `json:"produtoId"`
	Quantity  int             `json:"quantidade"`
	Product   catalog.Product `json:"produto"`
}

// ItemView is a Line annotated with its price subtotal for listing.
type ItemView struct {
	Line
	Subtotal float64 `json:"subtotal"`
}

const OrderStatusProcessing = "processando"

// Order is the immutable snapshot produced by Checkout.
type Order struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"data"`
	Lines     []Line          `json:"itens"`
	Total     float64         `json:"total"`
	Status    string          `json:"status"`
	Customer  json.RawMessage `json:"dadosCliente"`
}

// Cart holds the selected lines for one session. All operations take the
// cart mutex; the HTTP server calls them from concurrent requests.
type Cart struct {
	mu      sync.Mutex
	catalog catalog.Store
	lines   []Line
}

func New(store catalog.Store) *Cart {
	return &Cart{catalog: store}
}

// Add resolves productID against the catalog and merges qty into the cart:
// an existing line is incremented, otherwise a new line is appended. The
// post-merge quantity must stay within the product's nominal stock.
func (c *Cart) Add(ctx context.Context, productID, qty int) ([]Line, error) {
	p, ok, err := c.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProductNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if p.Stock < c.lines[i].Quantity+qty {
			return nil, ErrInsufficientStock
		}
		c.lines[i].Quantity += qty
		return c.snapshot(), nil
	}

	if p.Stock < qty {
		return nil, ErrInsufficientStock
	}
	c.lines = append(c.lines, Line{ProductID: productID, Quantity: qty, Product: p})
	return c.snapshot(), nil
}

// Items returns every line with its subtotal plus the grand total.
func (c *Cart) Items() ([]ItemView, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]ItemView, 0, len(c.lines))
	var total float64
	for _, l := range c.lines {
		sub := l.Product.Price * float64(l.Quantity)
		items = append(items, ItemView{Line: l, Subtotal: sub})
		total += sub
	}
	return items, total
}

// UpdateQuantity replaces the quantity of an existing line. A quantity of
// zero or less removes the line.
func (c *Cart) UpdateQuantity(productID, qty int) ([]Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if qty <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = qty
		}
		return c.snapshot(), nil
	}
	return nil, ErrItemNotFound
}

// Remove drops the line for productID if present. Removing an absent product
// is a no-op, not an error.
func (c *Cart) Remove(productID int) []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	return c.snapshot()
}

// Checkout snapshots the cart into an Order and empties it. The order id is
// a UUIDv7, which embeds the creation timestamp.
func (c *Cart) Checkout(customer json.RawMessage) (Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.lines) == 0 {
		return Order{}, ErrEmptyCart
	}
	if len(customer) == 0 {
		customer = json.RawMessage(`{}`)
	}

	var total float64
	for _, l := range c.lines {
		total += l.Product.Price * float64(l.Quantity)
	}

	o := Order{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CreatedAt: time.Now().UTC(),
		Lines:     c.snapshot(),
		Total:     total,
		Status:    OrderStatusProcessing,
		Customer:  customer,
	}

	c.lines = nil
	return o, nil
}

// snapshot copies the line slice for callers outside the lock. Lines hold
// the product by value, so the copy shares no mutable state.
func (c *Cart) snapshot() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}
