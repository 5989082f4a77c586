package cart

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Cafeteria/pkg/kit"
)

const (
	maxBodyBytes  = 1 << 20
	sessionHeader = "X-Session-ID"
)

type Server struct {
	Carts *Registry
	Log   *zap.Logger
}

func (s *Server) Register(r chi.Router) {
	r.Post("/carrinho", s.add)
	r.Get("/carrinho", s.list)
	r.Put("/carrinho/{produtoId}", s.update)
	r.Delete("/carrinho/{produtoId}", s.remove)
	r.Post("/checkout", s.checkout)
}

type addRequest struct {
	ProductID int  `json:"produtoId"`
	Quantity  *int `json:"quantidade"`
}

type updateRequest struct {
	Quantity *int `json:"quantidade"`
}

type checkoutRequest struct {
	Customer json.RawMessage `json:"dadosCliente"`
}

type cartResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    []Line `json:"data"`
}

type itemsResponse struct {
	Success bool       `json:"success"`
	Data    []ItemView `json:"data"`
	Total   float64    `json:"total"`
}

type orderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    Order  `json:"data"`
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if req.ProductID < 1 {
		kit.WriteError(w, http.StatusBadRequest, "ID de produto inválido")
		return
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if qty < 1 {
		kit.WriteError(w, http.StatusBadRequest, "Quantidade inválida")
		return
	}

	lines, err := s.cart(r).Add(r.Context(), req.ProductID, qty)
	if err != nil {
		s.writeCartError(w, r, err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, cartResponse{
		Success: true,
		Message: "Item adicionado ao carrinho",
		Data:    lines,
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	items, total := s.cart(r).Items()

	kit.WriteJSON(w, http.StatusOK, itemsResponse{
		Success: true,
		Data:    items,
		Total:   total,
	})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "produtoId"))
	if err != nil {
		kit.WriteError(w, http.StatusBadRequest, "ID de produto inválido")
		return
	}

	var req updateRequest
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if req.Quantity == nil {
		kit.WriteError(w, http.StatusBadRequest, "Quantidade é obrigatória")
		return
	}

	lines, err := s.cart(r).UpdateQuantity(productID, *req.Quantity)
	if err != nil {
		s.writeCartError(w, r, err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, cartResponse{
		Success: true,
		Message: "Carrinho atualizado",
		Data:    lines,
	})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "produtoId"))
	if err != nil {
		kit.WriteError(w, http.StatusBadRequest, "ID de produto inválido")
		return
	}

	lines := s.cart(r).Remove(productID)

	kit.WriteJSON(w, http.StatusOK, cartResponse{
		Success: true,
		Message: "Item removido do carrinho",
		Data:    lines,
	})
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	order, err := s.cart(r).Checkout(req.Customer)
	if err != nil {
		s.writeCartError(w, r, err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, orderResponse{
		Success: true,
		Message: "Pedido realizado com sucesso!",
		Data:    order,
	})
}

func (s *Server) cart(r *http.Request) *Cart {
	return s.Carts.Get(r.Header.Get(sessionHeader))
}

func (s *Server) writeCartError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		kit.WriteError(w, http.StatusNotFound, "Produto não encontrado")
	case errors.Is(err, ErrItemNotFound):
		kit.WriteError(w, http.StatusNotFound, "Item não encontrado no carrinho")
	case errors.Is(err, ErrInsufficientStock):
		kit.WriteError(w, http.StatusBadRequest, "Estoque insuficiente")
	case errors.Is(err, ErrEmptyCart):
		kit.WriteError(w, http.StatusBadRequest, "Carrinho vazio")
	default:
		if s.Log != nil {
			s.Log.Error("cart operation failed", zap.Error(err), zap.String("path", r.URL.Path))
		}
		kit.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

// decodeBody reads a single JSON object into dst. An entirely empty body is
// accepted and leaves dst at its zero value, matching clients that POST
// without a payload.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
