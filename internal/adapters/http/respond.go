package httpadapter

import (
	"encoding/json"
	"net/http"

	"esgwatch/internal/ports"
)

// Success writes data as JSON with the given status.
func Success(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes {"error": message}.
func Error(w http.ResponseWriter, statusCode int, message string) {
	Success(w, statusCode, map[string]string{"error": message})
}

// SourceFailure reports a failed feed document with the fetch message as is.
func SourceFailure(w http.ResponseWriter, se *ports.SourceError) {
	Success(w, http.StatusBadGateway, map[string]string{
		"error":  se.Message,
		"source": string(se.Resource),
	})
}
