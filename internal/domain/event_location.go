package domain

import "context"

// Province is an entry of the read-only geographic catalogue.
// swagger:model Province
type Province struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	FullName  string  `json:"full_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is a city or locality of the read-only geographic catalogue.
// swagger:model Location
type Location struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	ProvinceID int64     `json:"id_province"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Province   *Province `json:"province,omitempty"`
}

// EventLocation is a venue created by a user where events take place.
// swagger:model EventLocation
type EventLocation struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullAddress   string    `json:"full_address"`
	LocationID    *int64    `json:"id_location"`
	MaxCapacity   int       `json:"max_capacity"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	CreatorUserID int64     `json:"id_creator_user"`
	Location      *Location `json:"location,omitempty"`
}

// OwnerID implements Owned.
func (l *EventLocation) OwnerID() int64 {
	return l.CreatorUserID
}

// EventLocationInput is the writable part of an EventLocation.
type EventLocationInput struct {
	Name        string   `json:"name" validate:"min=3,max=200"`
	FullAddress string   `json:"full_address" validate:"min=3,max=300"`
	LocationID  *int64   `json:"id_location" validate:"omitempty,gt=0,lte=2147483647"`
	MaxCapacity int      `json:"max_capacity" validate:"gt=0,lte=2147483647"`
	Latitude    *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// NewEventLocation returns a new EventLocation owned by creatorID.
func NewEventLocation(in *EventLocationInput, creatorID int64) *EventLocation {
	l := &EventLocation{CreatorUserID: creatorID}
	l.Apply(in)
	return l
}

// Apply copies the writable fields of in onto l. Latitude and longitude must
// already be validated as present.
func (l *EventLocation) Apply(in *EventLocationInput) {
	l.Name = in.Name
	l.FullAddress = in.FullAddress
	l.LocationID = in.LocationID
	l.MaxCapacity = in.MaxCapacity
	if in.Latitude != nil {
		l.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		l.Longitude = *in.Longitude
	}
}

// EventLocationRepository defines the interface for event location storage.
type EventLocationRepository interface {
	Create(ctx context.Context, location *EventLocation) error
	// GetByID returns the location with its catalogue location and province.
	GetByID(ctx context.Context, id int64) (*EventLocation, error)
	// GetForUpdate locks the row exclusively until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*EventLocation, error)
	// GetForShare locks the row against updates and deletes until the transaction ends.
	GetForShare(ctx context.Context, id int64) (*EventLocation, error)
	ListByCreator(ctx context.Context, userID int64, params PaginationParams) ([]*EventLocation, int, error)
	Update(ctx context.Context, location *EventLocation) error
	Delete(ctx context.Context, id int64) error
	CountEvents(ctx context.Context, id int64) (int, error)
	LocationExists(ctx context.Context, locationID int64) (bool, error)
}

// EventLocationService defines the business logic for a user's event locations.
type EventLocationService interface {
	ListByUser(ctx context.Context, userID int64, params PaginationParams) ([]*EventLocation, int, error)
	GetByID(ctx context.Context, id, userID int64) (*EventLocation, error)
	Create(ctx context.Context, userID int64, in *EventLocationInput) (*EventLocation, error)
	Update(ctx context.Context, id, userID int64, in *EventLocationInput) (*EventLocation, error)
	Delete(ctx context.Context, id, userID int64) error
}
