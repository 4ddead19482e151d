package config

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/lingua-lambda/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// Error writes {"error": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Fail maps err to its status. Server errors are not echoed to the client.
func Fail(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway &&
		status != http.StatusGatewayTimeout {
		Error(w, status, "internal server error")
		return
	}
	Error(w, status, err.Error())
}
