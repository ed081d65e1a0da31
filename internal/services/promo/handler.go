package promo

import (
	"net/http"

	"github.com/sidjey-y/hellweekcoffee/internal/httpx"
	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

// Handler handles HTTP requests for promo codes
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new promo handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// Register mounts the promo routes
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /promos", httpx.WithLogging(h.logger, h.createPromo))
	mux.HandleFunc("GET /promos", httpx.WithLogging(h.logger, h.listPromos))
	mux.HandleFunc("GET /promos/{code}/validate", httpx.WithLogging(h.logger, h.validatePromo))
}

func (h *Handler) createPromo(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var promo models.PromoCode
	if err := httpx.DecodeJSON(r, &promo); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	created, err := h.service.Create(r.Context(), &promo, requestID)
	if err != nil {
		h.logger.Error("promo_creation_failed", "Failed to create promo code", requestID, err, map[string]interface{}{
			"code": promo.Code,
		})
		httpx.WriteDomainError(w, err, requestID)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) listPromos(w http.ResponseWriter, r *http.Request) {
	promos, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteDomainError(w, err, httpx.RequestID(r))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, promos)
}

func (h *Handler) validatePromo(w http.ResponseWriter, r *http.Request) {
	promo, err := h.service.Validate(r.Context(), r.PathValue("code"))
	if err != nil {
		httpx.WriteDomainError(w, err, httpx.RequestID(r))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, promo)
}
