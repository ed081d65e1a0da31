package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, statusCode int, message, requestID string) {
	WriteJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// WriteDomainError maps domain error kinds to HTTP status codes:
// validation 400, not found 404, invalid state 409, anything else 500 with
// the detail withheld.
func WriteDomainError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case models.IsValidation(err):
		WriteError(w, http.StatusBadRequest, err.Error(), requestID)
	case models.IsNotFound(err):
		WriteError(w, http.StatusNotFound, err.Error(), requestID)
	case models.IsInvalidState(err):
		WriteError(w, http.StatusConflict, err.Error(), requestID)
	default:
		WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

// DecodeJSON decodes a request body, rejecting unknown fields
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
