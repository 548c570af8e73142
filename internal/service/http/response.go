package http

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse — тело ответа при ошибке.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON отдаёт JSON-ответ с заданным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError отдаёт ошибку в едином формате.
func writeError(w http.ResponseWriter, status int, err error) {
	errorType := "error"
	switch status {
	case http.StatusNotFound:
		errorType = "not_found"
	case http.StatusBadRequest:
		errorType = "bad_request"
	case http.StatusBadGateway:
		errorType = "bad_gateway"
	case http.StatusInternalServerError:
		errorType = "internal_server_error"
	}

	writeJSON(w, status, ErrorResponse{
		Error:   errorType,
		Message: err.Error(),
	})
}
