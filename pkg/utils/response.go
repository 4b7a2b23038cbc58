package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the response shape shared by every REST endpoint.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// RespondJSON writes payload with the given status code.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondData writes a successful envelope around data.
func RespondData(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, Envelope{Success: true, Data: data})
}

// RespondError writes a failed envelope with a single message.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Envelope{Error: message})
}

// RespondValidation writes a failed envelope carrying field-level messages.
func RespondValidation(w http.ResponseWriter, errs []string) {
	RespondJSON(w, http.StatusBadRequest, Envelope{Error: "validation failed", Errors: errs})
}
