package transport

import (
	"encoding/json"
	"net/http"

	"github.com/raigadbazaar/marketplace/utils/errors"
)

// ErrorResponse is the error body shape consumed by the frontend
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeSuccess(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if ce, ok := err.(errors.CustomError); ok {
		status = ce.ErrorHTTPCode()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Detail: err.Error()})
}
