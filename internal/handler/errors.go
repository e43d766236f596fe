package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Client-facing messages that are not tied to a single field.
const (
	msgNotFound      = "Pessoa não encontrada."
	msgMissingTerm   = "Parâmetro de busca 't' é obrigatório."
	msgInvalidBody   = "Corpo da requisição inválido."
	msgConflict      = "Apelido já cadastrado."
	msgInternalError = "Erro interno."
)

// MsgBodyTooLarge is returned with 413 when a body exceeds the size cap.
const MsgBodyTooLarge = "Corpo da requisição muito grande."

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode response", "error", err)
	}
}

// writeError writes an ErrorResponse with the given status and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, ErrorResponse{Error: message})
}

// writeInternal logs err and replies 500 without leaking its detail.
func writeInternal(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeError(w, r, http.StatusInternalServerError, msgInternalError)
}

// rootCause returns the innermost error in err's wrap chain, stripping the
// "layer.Type.Method:" prefixes added on the way up.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
