package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"eventscheduler/internal/domain"
)

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondList(w http.ResponseWriter, status int, count int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Count: &count, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Data: struct{}{}, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

// respondDomainError maps domain errors onto HTTP statuses. Validation and
// missing-field failures surface with their own messages; anything else is
// an internal error and only the fallback message leaks out.
func respondDomainError(w http.ResponseWriter, err error, fallback string) {
	var verr *domain.ValidationError
	var merr *domain.MissingFieldError

	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &merr):
		respondError(w, http.StatusBadRequest, merr.Error())
	case errors.Is(err, domain.ErrDuplicateName):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
