package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventsplatform/internal/domain"
)

// Store exposes the Postgres repositories and runs units of work in transactions.
type Store struct {
	db   *sql.DB
	inTx bool

	events         domain.EventRepository
	eventLocations domain.EventLocationRepository
	enrollments    domain.EnrollmentRepository
	users          domain.UserRepository
	tags           domain.TagRepository
}

var _ domain.Store = (*Store)(nil)

// NewStore returns a Store whose repositories run directly on db.
func NewStore(db *sql.DB) *Store {
	return newStore(db, db, false)
}

func newStore(db *sql.DB, q Querier, inTx bool) *Store {
	return &Store{
		db:             db,
		inTx:           inTx,
		events:         NewEventRepository(q),
		eventLocations: NewEventLocationRepository(q),
		enrollments:    NewEnrollmentRepository(q),
		users:          NewUserRepository(q),
		tags:           NewTagRepository(q),
	}
}

func (s *Store) Events() domain.EventRepository                 { return s.events }
func (s *Store) EventLocations() domain.EventLocationRepository { return s.eventLocations }
func (s *Store) Enrollments() domain.EnrollmentRepository       { return s.enrollments }
func (s *Store) Users() domain.UserRepository                   { return s.users }
func (s *Store) Tags() domain.TagRepository                     { return s.tags }

// WithTx runs fn with repositories bound to a new transaction. Nested calls
// reuse the outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	// No-op once committed.
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, newStore(s.db, tx, true)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
