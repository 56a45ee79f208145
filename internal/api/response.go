package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// APIResponse is the envelope shared by every endpoint.
type APIResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    interface{}   `json:"data,omitempty"`
	Errors  []ErrorDetail `json:"errors,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}

func respondSuccess(w http.ResponseWriter, message string, data interface{}) {
	respondJSON(w, http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, APIResponse{Success: false, Message: message})
}

func respondValidationErrors(w http.ResponseWriter, errs []ErrorDetail) {
	respondJSON(w, http.StatusUnprocessableEntity, APIResponse{
		Success: false,
		Message: "Validation error",
		Errors:  errs,
	})
}

// respondInternalError hides failure detail outside development mode.
// Password and token internals never reach this path.
func (s *Server) respondInternalError(w http.ResponseWriter, err error) {
	log.Printf("ERROR: %v", err)
	message := "An internal error occurred"
	if s.config != nil && !s.config.IsProduction() {
		message = err.Error()
	}
	respondError(w, http.StatusInternalServerError, message)
}
