// Package handlers provides HTTP handlers for authentication and user management.
package handlers

import (
	"net/http"
	"time"

	"github.com/aristath/advisor/internal/modules/users"
	"github.com/aristath/advisor/internal/utils"
	"github.com/rs/zerolog"
)

// Handler handles auth and user HTTP requests
type Handler struct {
	service       *users.Service
	authRateLimit int
	log           zerolog.Logger
}

// NewHandler creates a new users handler.
// authRateLimit is the number of auth requests allowed per IP per minute.
func NewHandler(service *users.Service, authRateLimit int, log zerolog.Logger) *Handler {
	return &Handler{
		service:       service,
		authRateLimit: authRateLimit,
		log:           log.With().Str("handler", "users").Logger(),
	}
}

// HandleSignup handles POST /api/auth/signup
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req users.SignupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	user, err := h.service.Signup(r.Context(), req)
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	utils.WriteJSON(w, http.StatusOK, user, h.log)
}

// HandleLogin handles POST /api/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req users.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	user, err := h.service.Login(r.Context(), req)
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	utils.WriteJSON(w, http.StatusOK, user, h.log)
}

// HandleGetUsers handles GET /api/users
func (h *Handler) HandleGetUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.GetAll(r.Context())
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	utils.WriteJSON(w, http.StatusOK, list, h.log)
}

// HandleGetUser handles GET /api/users/{id}
func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	utils.WriteJSON(w, http.StatusOK, user, h.log)
}

// HandleUpdateUser handles PUT /api/users/{id}
func (h *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	var req users.UpdateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	user, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		utils.WriteError(w, err, h.log)
		return
	}

	utils.WriteJSON(w, http.StatusOK, user, h.log)
}

// HandleDeleteUser handles DELETE /api/users/{id}
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
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

// rateLimited writes the 429 body used when an IP exceeds the auth limit
func (h *Handler) rateLimited(w http.ResponseWriter, r *http.Request) {
	h.log.Warn().Str("remote_addr", r.RemoteAddr).Msg("Auth rate limit exceeded")
	utils.WriteJSON(w, http.StatusTooManyRequests, utils.ErrorResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Message:   "Too many requests",
		Status:    http.StatusTooManyRequests,
	}, h.log)
}
