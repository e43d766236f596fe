// Package repo contains all database access logic for the Pessoas API.
// No business logic lives here: only SQL, type mapping, and translation of
// Postgres errors into domain sentinels.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pessoas-api/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, pgx.Tx,
// and pgxmock's pool. Integration tests pass a transaction that is rolled
// back after each test; unit tests pass a pgxmock pool.
type db interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PersonRepo defines the persistence operations for Persons.
// The service layer depends on this interface, not the Postgres implementation.
type PersonRepo interface {
	// Create inserts a new person and returns the persisted record.
	// Returns domain.ErrConflict if the nickname is already taken.
	Create(ctx context.Context, p domain.NewPerson) (domain.Person, error)

	// GetByID retrieves a single person by primary key.
	// Returns domain.ErrNotFound if no person with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Person, error)

	// Search returns up to limit persons whose nickname, name, or joined tag
	// list contains term, case-insensitively. Order is unspecified.
	Search(ctx context.Context, term string, limit int) ([]domain.Person, error)

	// Count returns the total number of persons.
	Count(ctx context.Context) (int64, error)
}

// pgPersonRepo is the Postgres implementation of PersonRepo.
type pgPersonRepo struct {
	db db
}

// NewPersonRepo constructs a PersonRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx or a pgxmock pool.
func NewPersonRepo(db db) PersonRepo {
	return &pgPersonRepo{db: db}
}

// Create inserts a person row. The birth date is sent as text and parsed by
// Postgres, so an unparseable date fails here rather than in validation.
func (r *pgPersonRepo) Create(ctx context.Context, p domain.NewPerson) (domain.Person, error) {
	const q = `
		INSERT INTO pessoas (id, apelido, nome, nascimento, stack)
		VALUES ($1, $2, $3, $4::date, $5)
		RETURNING id, apelido, nome, nascimento, stack`

	row := r.db.QueryRow(ctx, q, p.ID, p.Nickname, p.Name, p.BirthDate, p.Tags)
	result, err := scanPerson(row)
	if err != nil {
		return domain.Person{}, fmt.Errorf("repo.PersonRepo.Create: %w", translateError(err))
	}
	return result, nil
}

// GetByID retrieves a person by primary key.
func (r *pgPersonRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Person, error) {
	const q = `
		SELECT id, apelido, nome, nascimento, stack
		FROM pessoas
		WHERE id = $1`

	result, err := scanPerson(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return domain.Person{}, fmt.Errorf("repo.PersonRepo.GetByID: %w", err)
	}
	return result, nil
}

// Search matches term against apelido, nome, and the comma-joined stack.
// % and _ in term keep their LIKE meaning.
func (r *pgPersonRepo) Search(ctx context.Context, term string, limit int) ([]domain.Person, error) {
	const q = `
		SELECT id, apelido, nome, nascimento, stack
		FROM pessoas
		WHERE apelido ILIKE '%' || $1::text || '%'
		   OR nome ILIKE '%' || $1::text || '%'
		   OR array_to_string(stack, ',') ILIKE '%' || $1::text || '%'
		LIMIT $2`

	rows, err := r.db.Query(ctx, q, term, limit)
	if err != nil {
		return nil, fmt.Errorf("repo.PersonRepo.Search: %w", err)
	}
	defer rows.Close()

	people := []domain.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PersonRepo.Search: scan: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PersonRepo.Search: rows: %w", err)
	}
	return people, nil
}

// Count returns the number of rows in pessoas.
func (r *pgPersonRepo) Count(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM pessoas`

	var n int64
	if err := r.db.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.PersonRepo.Count: %w", err)
	}
	return n, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanPerson to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanPerson maps a single database row into a domain.Person.
// A NULL stack leaves Tags nil.
func scanPerson(s scanner) (domain.Person, error) {
	var (
		p         domain.Person
		id        pgtype.UUID
		birthDate pgtype.Date
	)

	err := s.Scan(&id, &p.Nickname, &p.Name, &birthDate, &p.Tags)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Person{}, domain.ErrNotFound
		}
		return domain.Person{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.BirthDate = birthDate.Time
	return p, nil
}

// translateError maps Postgres constraint errors onto domain sentinels.
// Anything else is returned unchanged.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
	}
	return err
}
