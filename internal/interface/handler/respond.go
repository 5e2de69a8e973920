package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps domain errors onto HTTP statuses. Ledger write
// rejections and portal errors stay distinguishable through both status
// and message.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), map[string]string{"error": err.Error()})
}

func statusForError(err error) int {
	var notFound *entity.NotFoundError
	var validation *entity.ValidationError
	var remote *entity.RemoteError
	var ledger *entity.LedgerWriteError
	var configuration *entity.ConfigurationError

	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &remote):
		return http.StatusBadGateway
	case errors.As(err, &ledger):
		return http.StatusInternalServerError
	case errors.As(err, &configuration):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, into interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return &entity.ValidationError{Reason: "invalid request body"}
	}
	return nil
}
