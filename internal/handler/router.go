package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler returns the chi router with every API route registered on s.
// Middleware is applied by the caller so tests can exercise routes bare.
func Handler(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/readyz", s.GetReady)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Post("/pessoas", s.CreatePerson)
	r.Get("/pessoas", s.SearchPersons)
	r.Get("/pessoas/{id}", s.GetPerson)
	r.Get("/contagem-pessoas", s.CountPersons)

	return r
}
