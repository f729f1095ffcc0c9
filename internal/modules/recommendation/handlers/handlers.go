// Package handlers provides the HTTP handler for recommendations.
package handlers

import (
	"net/http"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/recommendation"
	"github.com/aristath/advisor/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles recommendation HTTP requests
type Handler struct {
	service *recommendation.Service
	log     zerolog.Logger
}

// NewHandler creates a new recommendation handler
func NewHandler(service *recommendation.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "recommendation").Logger(),
	}
}

// RegisterRoutes registers recommendation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/recommendations/{userId}", h.HandleGetRecommendations)
}

// HandleGetRecommendations handles GET /api/recommendations/{userId}?contract=
func (h *Handler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.PathID(r, "userId")
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	contract := h.service.DefaultContract()
	if raw := r.URL.Query().Get("contract"); raw != "" {
		parsed, ok := domain.ParseStrategyContract(raw)
		if !ok {
			utils.WriteError(w, &utils.InputError{Message: "unknown contract: " + raw}, h.log)
			return
		}
		contract = parsed
	}

	products, err := h.service.GetRecommendationsWithContract(r.Context(), userID, contract)
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	utils.WriteJSON(w, http.StatusOK, products, h.log)
}
