package web

import (
	"encoding/json"
	"net/http"

	"notetaker/pkg/apperror"
	"notetaker/pkg/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

// Error writes err as a JSON error response, logging internal failures.
func Error(w http.ResponseWriter, err error) {
	status := apperror.Status(err)
	if status == http.StatusInternalServerError {
		logger.Sugar.Errorf("Internal error: %v", err)
	}
	JSON(w, status, errorBody{Error: apperror.Message(err)})
}
