package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventsplatform/internal/domain"
	"eventsplatform/internal/validation"
)

type eventLocationService struct {
	store          domain.Store
	contextTimeout time.Duration
}

func NewEventLocationService(store domain.Store, timeout time.Duration) domain.EventLocationService {
	return &eventLocationService{
		store:          store,
		contextTimeout: timeout,
	}
}

func (s *eventLocationService) ListByUser(ctx context.Context, userID int64, params domain.PaginationParams) ([]*domain.EventLocation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	locations, total, err := s.store.EventLocations().ListByCreator(ctx, userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list event locations: %w", err)
	}
	if locations == nil {
		locations = []*domain.EventLocation{}
	}
	return locations, total, nil
}

// GetByID only returns locations created by userID. Someone else's location is
// reported exactly like a missing one.
func (s *eventLocationService) GetByID(ctx context.Context, id, userID int64) (*domain.EventLocation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	location, err := s.store.EventLocations().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, domain.MsgLocationNotFoundForUser)
		}
		return nil, fmt.Errorf("get event location: %w", err)
	}
	if err := domain.AssertOwnership(location, userID, domain.MsgLocationNotFoundForUser); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *eventLocationService) Create(ctx context.Context, userID int64, in *domain.EventLocationInput) (*domain.EventLocation, error) {
	if msgs := validation.ValidateEventLocationData(in); len(msgs) > 0 {
		return nil, domain.NewValidationError(msgs)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkCatalogueLocation(ctx, s.store, in.LocationID); err != nil {
		return nil, err
	}
	location := domain.NewEventLocation(in, userID)
	if err := s.store.EventLocations().Create(ctx, location); err != nil {
		if errors.Is(err, domain.ErrLocationReference) {
			return nil, domain.NewError(domain.ErrValidation, domain.MsgLocationReferenceMissing)
		}
		return nil, fmt.Errorf("create event location: %w", err)
	}
	return s.reload(ctx, location)
}

func (s *eventLocationService) Update(ctx context.Context, id, userID int64, in *domain.EventLocationInput) (*domain.EventLocation, error) {
	if msgs := validation.ValidateEventLocationData(in); len(msgs) > 0 {
		return nil, domain.NewValidationError(msgs)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var location *domain.EventLocation
	err := s.store.WithTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		location, err = s.lockOwned(ctx, repos, id, userID)
		if err != nil {
			return err
		}
		if err := s.checkCatalogueLocation(ctx, repos, in.LocationID); err != nil {
			return err
		}
		location.Apply(in)
		if err := repos.EventLocations().Update(ctx, location); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return domain.NewError(domain.ErrNotFound, domain.MsgLocationNotFoundForUser)
			case errors.Is(err, domain.ErrLocationReference):
				return domain.NewError(domain.ErrValidation, domain.MsgLocationReferenceMissing)
			}
			return fmt.Errorf("update event location: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, location)
}

func (s *eventLocationService) Delete(ctx context.Context, id, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.store.WithTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := s.lockOwned(ctx, repos, id, userID); err != nil {
			return err
		}
		inUse, err := repos.EventLocations().CountEvents(ctx, id)
		if err != nil {
			return fmt.Errorf("count events at location: %w", err)
		}
		if inUse > 0 {
			return domain.NewError(domain.ErrInvalidState, domain.MsgLocationInUse)
		}
		if err := repos.EventLocations().Delete(ctx, id); err != nil {
			switch {
			case errors.Is(err, domain.ErrLocationInUse):
				return domain.NewError(domain.ErrInvalidState, domain.MsgLocationInUse)
			case errors.Is(err, domain.ErrNotFound):
				return domain.NewError(domain.ErrNotFound, domain.MsgLocationNotFoundForUser)
			}
			return fmt.Errorf("delete event location: %w", err)
		}
		return nil
	})
}

func (s *eventLocationService) lockOwned(ctx context.Context, repos domain.Repositories, id, userID int64) (*domain.EventLocation, error) {
	location, err := repos.EventLocations().GetForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, domain.MsgLocationNotFoundForUser)
		}
		return nil, fmt.Errorf("lock event location: %w", err)
	}
	if err := domain.AssertOwnership(location, userID, domain.MsgLocationNotFoundForUser); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *eventLocationService) checkCatalogueLocation(ctx context.Context, repos domain.Repositories, locationID *int64) error {
	if locationID == nil {
		return nil
	}
	ok, err := repos.EventLocations().LocationExists(ctx, *locationID)
	if err != nil {
		return fmt.Errorf("check location: %w", err)
	}
	if !ok {
		return domain.NewError(domain.ErrValidation, domain.MsgLocationReferenceMissing)
	}
	return nil
}

func (s *eventLocationService) reload(ctx context.Context, location *domain.EventLocation) (*domain.EventLocation, error) {
	full, err := s.store.EventLocations().GetByID(ctx, location.ID)
	if err != nil {
		return nil, fmt.Errorf("reload event location: %w", err)
	}
	return full, nil
}
