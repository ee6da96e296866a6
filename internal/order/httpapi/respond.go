package httpapi

import (
	"encoding/json"
	"net/http"
)

// envelope is the {data, meta} shape every response uses. Meta is an empty
// object unless it carries pagination or an error.
type envelope struct {
	Data any `json:"data"`
	Meta any `json:"meta"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Data: data, Meta: struct{}{}})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Data: nil, Meta: map[string]string{"error": msg}})
}
