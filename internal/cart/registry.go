package cart

import (
	"sync"

	"Cafeteria/internal/catalog"
)

// defaultSession backs every request that carries no session id, so
// header-less clients keep sharing one cart.
const defaultSession = "default"

// Registry owns one Cart per session id, created lazily.
type Registry struct {
	mu      sync.Mutex
	catalog catalog.Store
	carts   map[string]*Cart
}

func NewRegistry(store catalog.Store) *Registry {
	return &Registry{
		catalog: store,
		carts:   make(map[string]*Cart),
	}
}

func (g *Registry) Get(sessionID string) *Cart {
	if sessionID == "" {
		sessionID = defaultSession
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.carts[sessionID]
	if !ok {
		c = New(g.catalog)
		g.carts[sessionID] = c
	}
	return c
}
