package pos

import (
	"context"
	"net/http"
	"time"

	"github.com/sidjey-y/hellweekcoffee/internal/httpx"
	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

// Handler handles HTTP requests for transactions
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new transaction handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// Register mounts the transaction routes
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /transactions", httpx.WithLogging(h.logger, h.createTransaction))
	mux.HandleFunc("GET /transactions", httpx.WithLogging(h.logger, h.listTransactions))
	mux.HandleFunc("GET /transactions/{number}", httpx.WithLogging(h.logger, h.getTransaction))
	mux.HandleFunc("POST /transactions/{number}/complete", httpx.WithLogging(h.logger, h.completeTransaction))
	mux.HandleFunc("POST /transactions/{number}/cancel", httpx.WithLogging(h.logger, h.cancelTransaction))
	mux.HandleFunc("GET /health", httpx.WithLogging(h.logger, h.healthCheck))
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var req TransactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := h.service.CreateOrder(ctx, &req, requestID)
	if err != nil {
		h.logger.Error("order_creation_failed", "Failed to create order", requestID, err, map[string]interface{}{
			"payment_method": req.PaymentMethod,
			"line_count":     len(req.Lines),
		})
		httpx.WriteDomainError(w, err, requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, response)
}

func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	order, err := h.service.GetOrder(r.Context(), r.PathValue("number"))
	if err != nil {
		httpx.WriteDomainError(w, err, requestID)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	status := models.OrderStatus(r.URL.Query().Get("status"))
	switch status {
	case models.StatusPending, models.StatusCompleted, models.StatusCancelled:
	default:
		httpx.WriteError(w, http.StatusBadRequest, "status must be one of: pending, completed, cancelled", requestID)
		return
	}

	orders, err := h.service.ListOrders(r.Context(), status)
	if err != nil {
		httpx.WriteDomainError(w, err, requestID)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) completeTransaction(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.CompleteOrder)
}

func (h *Handler) cancelTransaction(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.CancelOrder)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, number, requestID string) (*models.Order, error)) {
	requestID := httpx.RequestID(r)

	order, err := op(r.Context(), r.PathValue("number"), requestID)
	if err != nil {
		h.logger.Error("status_change_failed", "Failed to change order status", requestID, err, map[string]interface{}{
			"order_number": r.PathValue("number"),
		})
		httpx.WriteDomainError(w, err, requestID)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pos-server",
	}
	if healthy {
		httpx.WriteJSON(w, http.StatusOK, response)
		return
	}
	response["status"] = "unhealthy"
	httpx.WriteJSON(w, http.StatusServiceUnavailable, response)
}
