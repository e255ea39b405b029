package domain

import "context"

// Repositories groups the repositories bound to one connection or transaction.
type Repositories interface {
	Events() EventRepository
	EventLocations() EventLocationRepository
	Enrollments() EnrollmentRepository
	Users() UserRepository
	Tags() TagRepository
}

// Store gives access to repositories and runs units of work atomically.
type Store interface {
	Repositories
	// WithTx runs fn inside a transaction. The repositories passed to fn are bound
	// to it; the transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Ping(ctx context.Context) error
}
