package domain

import (
	"context"
	"time"
)

// Event is a scheduled happening held at an EventLocation that users can enroll in.
// swagger:model Event
type Event struct {
	ID                   int64          `json:"id"`
	Name                 string         `json:"name"`
	Description          string         `json:"description"`
	EventLocationID      int64          `json:"id_event_location"`
	StartDate            time.Time      `json:"start_date"`
	DurationInMinutes    int            `json:"duration_in_minutes"`
	Price                float64        `json:"price"`
	EnabledForEnrollment bool           `json:"enabled_for_enrollment"`
	MaxAssistance        int            `json:"max_assistance"`
	CreatorUserID        int64          `json:"id_creator_user"`
	CreatorUser          *UserSummary   `json:"creator_user,omitempty"`
	EventLocation        *EventLocation `json:"event_location,omitempty"`
	Tags                 []*Tag         `json:"tags"`
}

// OwnerID implements Owned.
func (e *Event) OwnerID() int64 {
	return e.CreatorUserID
}

// EventInput is the writable part of an Event, as received on create and update.
type EventInput struct {
	Name                 string    `json:"name" validate:"min=3,max=200"`
	Description          string    `json:"description" validate:"min=3"`
	EventLocationID      int64     `json:"id_event_location" validate:"gt=0,lte=2147483647"`
	StartDate            time.Time `json:"start_date"`
	DurationInMinutes    int       `json:"duration_in_minutes" validate:"gte=0,lte=2147483647"`
	Price                float64   `json:"price" validate:"gte=0,lte=99999999.99"`
	EnabledForEnrollment bool      `json:"enabled_for_enrollment"`
	MaxAssistance        int       `json:"max_assistance" validate:"gt=0,lte=2147483647"`
	// Tags replaces the event's tags when non-nil.
	Tags []string `json:"tags" validate:"omitempty,dive,min=1,max=100"`
}

// NewEvent returns a new Event owned by creatorID. ID is set by the repository on create.
func NewEvent(in *EventInput, creatorID int64) *Event {
	e := &Event{CreatorUserID: creatorID}
	e.Apply(in)
	return e
}

// Apply copies the writable fields of in onto e.
func (e *Event) Apply(in *EventInput) {
	e.Name = in.Name
	e.Description = in.Description
	e.EventLocationID = in.EventLocationID
	e.StartDate = in.StartDate
	e.DurationInMinutes = in.DurationInMinutes
	e.Price = in.Price
	e.EnabledForEnrollment = in.EnabledForEnrollment
	e.MaxAssistance = in.MaxAssistance
}

// EventFilter narrows event listings. Zero values mean no filtering.
type EventFilter struct {
	Name      string
	StartDate *time.Time
	Tag       string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	// GetByID returns the event with its creator and location.
	GetByID(ctx context.Context, id int64) (*Event, error)
	// GetForUpdate returns the bare event row and locks it until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id int64) error
}

// EventService defines the business logic for events.
type EventService interface {
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	Create(ctx context.Context, userID int64, in *EventInput) (*Event, error)
	Update(ctx context.Context, id, userID int64, in *EventInput) (*Event, error)
	Delete(ctx context.Context, id, userID int64) error
}
