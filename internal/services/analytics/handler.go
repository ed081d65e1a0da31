package analytics

import (
	"net/http"
	"time"

	"github.com/sidjey-y/hellweekcoffee/internal/httpx"
	"github.com/sidjey-y/hellweekcoffee/internal/logger"
)

// Handler handles HTTP requests for sales reports
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// Register mounts the reporting routes
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /reports/sales", httpx.WithLogging(h.logger, h.salesReport))
}

// salesReport accepts optional from/to query params as YYYY-MM-DD dates;
// the default window is the last 30 days.
func (h *Handler) salesReport(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "from must be a YYYY-MM-DD date", requestID)
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "to must be a YYYY-MM-DD date", requestID)
			return
		}
		// inclusive end date
		to = parsed.AddDate(0, 0, 1)
	}

	report, err := h.service.Report(r.Context(), from, to, requestID)
	if err != nil {
		httpx.WriteDomainError(w, err, requestID)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, report)
}
