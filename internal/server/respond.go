package server

import (
	"encoding/json"
	"net/http"

	"github.com/Mikheydazz/starmatch-bot/internal/apperr"
)

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError maps a service error to its HTTP status and writes a JSON
// error body.
func RespondError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// don't leak infra details to clients
		msg = "internal error"
	}
	RespondJSON(w, status, map[string]string{"error": msg})
}
