package domain

import (
	"context"
	"time"
)

// Enrollment records that a user holds a spot in an event.
// swagger:model Enrollment
type Enrollment struct {
	EventID              int64     `json:"id_event"`
	UserID               int64     `json:"id_user"`
	Description          *string   `json:"description"`
	Attended             bool      `json:"attended"`
	Rating               *int      `json:"rating"`
	RegistrationDateTime time.Time `json:"registration_date_time"`
}

// NewEnrollment returns an enrollment registered at the given instant.
func NewEnrollment(eventID, userID int64, registeredAt time.Time) *Enrollment {
	return &Enrollment{
		EventID:              eventID,
		UserID:               userID,
		RegistrationDateTime: registeredAt,
	}
}

// EnrollmentDetail is one row of an event's participant listing.
// swagger:model EnrollmentDetail
type EnrollmentDetail struct {
	User        UserSummary `json:"user"`
	Attended    bool        `json:"attended"`
	Rating      *int        `json:"rating"`
	Description *string     `json:"description"`
}

// EnrollmentRepository defines the interface for enrollment storage.
type EnrollmentRepository interface {
	Exists(ctx context.Context, eventID, userID int64) (bool, error)
	CountByEvent(ctx context.Context, eventID int64) (int, error)
	// Create returns ErrAlreadyEnrolled when the pair is already present.
	Create(ctx context.Context, enrollment *Enrollment) error
	// Delete returns the removed enrollment, or nil when nothing matched.
	Delete(ctx context.Context, eventID, userID int64) (*Enrollment, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*EnrollmentDetail, error)
}

// EnrollmentService drives the enrollment lifecycle of an event.
type EnrollmentService interface {
	Enroll(ctx context.Context, eventID, userID int64) (*Enrollment, error)
	Unenroll(ctx context.Context, eventID, userID int64) (*Enrollment, error)
	ListEnrollments(ctx context.Context, eventID int64) ([]*EnrollmentDetail, error)
}
