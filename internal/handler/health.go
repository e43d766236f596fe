package handler

import (
	"net/http"

	"github.com/pessoas-api/backend/api"
)

// HealthResponse is the body of the liveness and readiness probes.
type HealthResponse struct {
	Status string `json:"status"`
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetReady handles GET /readyz. It pings the database and returns 503 when
// the ping fails.
func (s *Server) GetReady(w http.ResponseWriter, r *http.Request) {
	if s.db == nil || s.db.Ping(r.Context()) != nil {
		writeJSON(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetOpenAPI handles GET /openapi.yaml by serving the embedded document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(api.OpenAPI)
}
