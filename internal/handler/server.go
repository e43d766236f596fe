// Package handler implements the HTTP handlers for the Pessoas API.
// All handlers are methods on Server; Handler mounts them on a chi router.
// Methods are split into resource-specific files (health.go, person.go).
package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/pessoas-api/backend/internal/domain"
)

// PersonServicer defines the business operations the person handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type PersonServicer interface {
	Create(ctx context.Context, in domain.PersonInput) (domain.Person, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Person, error)
	Search(ctx context.Context, term string) ([]domain.Person, error)
	Count(ctx context.Context) (int64, error)
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies shared by every handler.
type Server struct {
	people PersonServicer
	db     Pinger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(people PersonServicer, db Pinger) *Server {
	return &Server{people: people, db: db}
}
