package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/pessoas-api/backend/internal/handler"
)

// NewMaxBodySizeHandler returns a middleware that caps request bodies at limit
// bytes. A request that declares a larger Content-Length is answered with 413
// before the next handler runs. Otherwise the body is wrapped in
// http.MaxBytesReader, so a read past the limit fails with *http.MaxBytesError
// and the handler decides the reply. A limit <= 0 disables the check.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Connection", "close")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_ = json.NewEncoder(w).Encode(handler.ErrorResponse{Error: handler.MsgBodyTooLarge})
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
