package customer

import (
	"net/http"

	"github.com/sidjey-y/hellweekcoffee/internal/httpx"
	"github.com/sidjey-y/hellweekcoffee/internal/logger"
)

// Handler handles HTTP requests for customer management
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new customer handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// Register mounts the customer routes
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /customers/members", httpx.WithLogging(h.logger, h.createMember))
	mux.HandleFunc("GET /customers/members/{membershipID}", httpx.WithLogging(h.logger, h.getMember))
	mux.HandleFunc("PUT /customers/members/{membershipID}", httpx.WithLogging(h.logger, h.updateMember))
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var req MemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	member, err := h.service.CreateMember(r.Context(), &req, requestID)
	if err != nil {
		h.logger.Error("member_creation_failed", "Failed to register member", requestID, err, nil)
		httpx.WriteDomainError(w, err, requestID)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, member)
}

func (h *Handler) getMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.service.GetByMembershipID(r.Context(), r.PathValue("membershipID"))
	if err != nil {
		httpx.WriteDomainError(w, err, httpx.RequestID(r))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) updateMember(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r)

	var req MemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	member, err := h.service.UpdateMember(r.Context(), r.PathValue("membershipID"), &req, requestID)
	if err != nil {
		httpx.WriteDomainError(w, err, requestID)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, member)
}
