package catalog

import (
	"net/http"
	"strconv"

	"github.com/sidjey-y/hellweekcoffee/internal/httpx"
	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

// Handler handles HTTP requests for catalog management
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// Register mounts the catalog routes
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /catalog/items", httpx.WithLogging(h.logger, h.createItem))
	mux.HandleFunc("GET /catalog/items", httpx.WithLogging(h.logger, h.listItems))
	mux.HandleFunc("GET /catalog/items/{code}", httpx.WithLogging(h.logger, h.getItem))
	mux.HandleFunc("DELETE /catalog/items/{code}", httpx.WithLogging(h.logger, h.deactivateItem))
	mux.HandleFunc("POST /catalog/categories", httpx.WithLogging(h.logger, h.createCategory))
	mux.HandleFunc("GET /catalog/categories", httpx.WithLogging(h.logger, h.listCategories))
	mux.HandleFunc("POST /catalog/customizations", httpx.WithLogging(h.logger, h.createCustomization))
	mux.HandleFunc("GET /catalog/customizations", httpx.WithLogging(h.logger, h.listCustomizations))
	mux.HandleFunc("GET /catalog/customizations/{id}", httpx.WithLogging(h.logger, h.getCustomization))
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var req ItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	item, err := h.service.CreateItem(r.Context(), &req, requestID)
	if err != nil {
		h.logger.Error("item_creation_failed", "Failed to create item", requestID, err, map[string]interface{}{
			"code": req.Code,
		})
		httpx.WriteDomainError(w, err, requestID)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		httpx.WriteDomainError(w, err, httpx.RequestID(r))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetItem(r.Context(), r.PathValue("code"))
	if err != nil {
		httpx.WriteDomainError(w, err, httpx.RequestID(r))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) deactivateItem(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)
	if err := h.service.DeactivateItem(r.Context(), r.PathValue("code"), requestID); err != nil {
		httpx.WriteDomainError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var category models.Category
	if err := httpx.DecodeJSON(r, &category); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	created, err := h.service.CreateCategory(r.Context(), &category)
	if err != nil {
		httpx.WriteDomainError(w, err, requestID)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httpx.WriteDomainError(w, err, httpx.RequestID(r))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) createCustomization(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var req CustomizationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	customization, err := h.service.CreateCustomization(r.Context(), &req, requestID)
	if err != nil {
		h.logger.Error("customization_creation_failed", "Failed to create customization", requestID, err, map[string]interface{}{
			"name": req.Name,
		})
		httpx.WriteDomainError(w, err, requestID)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, customization)
}

func (h *Handler) listCustomizations(w http.ResponseWriter, r *http.Request) {
	customizations, err := h.service.ListCustomizations(r.Context())
	if err != nil {
		httpx.WriteDomainError(w, err, httpx.RequestID(r))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, customizations)
}

func (h *Handler) getCustomization(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "customization id must be an integer", requestID)
		return
	}

	customization, err := h.service.GetCustomization(r.Context(), id)
	if err != nil {
		httpx.WriteDomainError(w, err, requestID)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, customization)
}
