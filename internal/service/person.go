// Package service contains the business logic for the Pessoas API.
// Services validate inputs, assign identifiers, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pessoas-api/backend/internal/domain"
	"github.com/pessoas-api/backend/internal/repo"
)

// PersonService implements business logic for Person operations.
type PersonService struct {
	repo  repo.PersonRepo
	newID func() uuid.UUID
}

// NewPersonService constructs a PersonService backed by the provided PersonRepo.
func NewPersonService(r repo.PersonRepo) *PersonService {
	return &PersonService{repo: r, newID: uuid.New}
}

// Create validates the input, assigns a new id, and persists the person.
// Validation failures wrap domain.ErrValidation and never reach the repo.
func (s *PersonService) Create(ctx context.Context, in domain.PersonInput) (domain.Person, error) {
	if err := in.Validate(); err != nil {
		return domain.Person{}, fmt.Errorf("service.PersonService.Create: %w", err)
	}

	created, err := s.repo.Create(ctx, in.WithID(s.newID()))
	if err != nil {
		return domain.Person{}, fmt.Errorf("service.PersonService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single person by ID.
func (s *PersonService) GetByID(ctx context.Context, id uuid.UUID) (domain.Person, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Person{}, fmt.Errorf("service.PersonService.GetByID: %w", err)
	}
	return p, nil
}

// Search returns up to domain.SearchLimit persons matching term.
// An empty term wraps domain.ErrInvalidSearch.
func (s *PersonService) Search(ctx context.Context, term string) ([]domain.Person, error) {
	if term == "" {
		return nil, fmt.Errorf("service.PersonService.Search: %w", domain.ErrInvalidSearch)
	}

	people, err := s.repo.Search(ctx, term, domain.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("service.PersonService.Search: %w", err)
	}
	if people == nil {
		people = []domain.Person{}
	}
	return people, nil
}

// Count returns the total number of persons.
func (s *PersonService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("service.PersonService.Count: %w", err)
	}
	return n, nil
}
