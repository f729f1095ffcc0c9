// Package handlers provides HTTP handlers for the product catalog.
package handlers

import (
	"net/http"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/products"
	"github.com/aristath/advisor/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles catalog HTTP requests
type Handler struct {
	service *products.Service
	log     zerolog.Logger
}

// NewHandler creates a new products handler
func NewHandler(service *products.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "products").Logger(),
	}
}

// RegisterRoutes registers catalog routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

// HandleList handles GET /api/products with an optional ?type= filter
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var (
		list []domain.FinancialProduct
		err  error
	)

	if raw := r.URL.Query().Get("type"); raw != "" {
		t, ok := domain.ParseProductType(raw)
		if !ok {
			utils.WriteError(w, &utils.InputError{Message: "unknown product type: " + raw}, h.log)
			return
		}
		list, err = h.service.GetByType(r.Context(), t)
	} else {
		list, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	utils.WriteJSON(w, http.StatusOK, list, h.log)
}

// HandleGet handles GET /api/products/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p, h.log)
}

// HandleCreate handles POST /api/products
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req products.ProductRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p, h.log)
}

// HandleUpdate handles PUT /api/products/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	var req products.ProductRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	p, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p, h.log)
}

// HandleDelete handles DELETE /api/products/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, err, h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
