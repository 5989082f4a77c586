package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Cafeteria/pkg/kit"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Register(r chi.Router) {
	r.Get("/produtos", s.list)
	r.Get("/produtos/{id}", s.get)
	r.Get("/categorias", s.categories)
}

type listResponse struct {
	Success bool      `json:"success"`
	Data    []Product `json:"data"`
	Total   int       `json:"total"`
}

type productResponse struct {
	Success bool    `json:"success"`
	Data    Product `json:"data"`
}

type categoriesResponse struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("categoria")

	products, err := s.Store.List(r.Context(), category)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list products failed", zap.Error(err), zap.String("categoria", category))
		}
		kit.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	kit.WriteJSON(w, http.StatusOK, listResponse{
		Success: true,
		Data:    products,
		Total:   len(products),
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, http.StatusBadRequest, "ID de produto inválido")
		return
	}

	p, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.Int("id", id))
		}
		kit.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	if !ok {
		kit.WriteError(w, http.StatusNotFound, "Produto não encontrado")
		return
	}

	kit.WriteJSON(w, http.StatusOK, productResponse{Success: true, Data: p})
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.Store.Categories(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list categories failed", zap.Error(err))
		}
		kit.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	kit.WriteJSON(w, http.StatusOK, categoriesResponse{Success: true, Data: categories})
}
