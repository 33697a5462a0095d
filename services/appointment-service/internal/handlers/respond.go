package handlers

import (
	"encoding/json"
	"net/http"
)

// Every response is wrapped in the same envelope: success plus data on the
// happy path, success=false plus error/message on failure.
type successEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeSuccess(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, successEnvelope{Success: true, Data: data, Message: message})
}

func writeError(w http.ResponseWriter, status int, errText, message string) {
	writeJSON(w, status, errorEnvelope{Success: false, Error: errText, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
