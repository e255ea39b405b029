package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventsplatform/internal/domain"
	"eventsplatform/internal/validation"
)

type eventService struct {
	store          domain.Store
	contextTimeout time.Duration
}

func NewEventService(store domain.Store, timeout time.Duration) domain.EventService {
	return &eventService{
		store:          store,
		contextTimeout: timeout,
	}
}

func (s *eventService) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	filter.Name = strings.TrimSpace(filter.Name)
	filter.Tag = strings.TrimSpace(filter.Tag)
	events, total, err := s.store.Events().List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if len(events) == 0 {
		return []*domain.Event{}, total, nil
	}

	ids := make([]int64, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	tags, err := s.store.Tags().ListTagsByEventIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("list event tags: %w", err)
	}
	for _, e := range events {
		e.Tags = tags[e.ID]
		if e.Tags == nil {
			e.Tags = []*domain.Tag{}
		}
	}
	return events, total, nil
}

func (s *eventService) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.store.Events().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, domain.MsgEventNotFound)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := attachTags(ctx, s.store, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Create inserts the event while holding a shared lock on its location, so the
// location's capacity cannot shrink between the check and the insert.
func (s *eventService) Create(ctx context.Context, userID int64, in *domain.EventInput) (*domain.Event, error) {
	if msgs := validation.ValidateEventData(in); len(msgs) > 0 {
		return nil, domain.NewValidationError(msgs)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event := domain.NewEvent(in, userID)
	err := s.store.WithTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if err := checkLocationCapacity(ctx, repos, in); err != nil {
			return err
		}
		if err := repos.Events().Create(ctx, event); err != nil {
			if errors.Is(err, domain.ErrLocationReference) {
				return domain.NewError(domain.ErrValidation, domain.MsgEventLocationMissing)
			}
			return fmt.Errorf("create event: %w", err)
		}
		return replaceTags(ctx, repos, event.ID, in.Tags, false)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, event.ID)
}

func (s *eventService) Update(ctx context.Context, id, userID int64, in *domain.EventInput) (*domain.Event, error) {
	if msgs := validation.ValidateEventData(in); len(msgs) > 0 {
		return nil, domain.NewValidationError(msgs)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	err := s.store.WithTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		event, err := lockEvent(ctx, repos, id, domain.MsgEventNotFoundForUpdate)
		if err != nil {
			return err
		}
		if err := domain.AssertOwnership(event, userID, domain.MsgEventUpdateForbidden); err != nil {
			return err
		}
		if err := checkLocationCapacity(ctx, repos, in); err != nil {
			return err
		}

		enrolled, err := repos.Enrollments().CountByEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("count enrollments: %w", err)
		}
		if in.MaxAssistance < enrolled {
			return domain.NewError(domain.ErrValidation, domain.MsgAssistanceBelowEnrolled)
		}

		event.Apply(in)
		if err := repos.Events().Update(ctx, event); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return domain.NewError(domain.ErrNotFound, domain.MsgEventNotFoundForUpdate)
			case errors.Is(err, domain.ErrLocationReference):
				return domain.NewError(domain.ErrValidation, domain.MsgEventLocationMissing)
			}
			return fmt.Errorf("update event: %w", err)
		}
		if in.Tags == nil {
			return nil
		}
		return replaceTags(ctx, repos, id, in.Tags, true)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *eventService) Delete(ctx context.Context, id, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.store.WithTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		event, err := lockEvent(ctx, repos, id, domain.MsgEventNotFoundForDelete)
		if err != nil {
			return err
		}
		if err := domain.AssertOwnership(event, userID, domain.MsgEventDeleteForbidden); err != nil {
			return err
		}

		enrolled, err := repos.Enrollments().CountByEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("count enrollments: %w", err)
		}
		if enrolled > 0 {
			return domain.NewError(domain.ErrInvalidState, domain.MsgEventHasEnrollments)
		}

		if err := repos.Events().Delete(ctx, id); err != nil {
			switch {
			case errors.Is(err, domain.ErrEventHasEnrollments):
				return domain.NewError(domain.ErrInvalidState, domain.MsgEventHasEnrollments)
			case errors.Is(err, domain.ErrNotFound):
				return domain.NewError(domain.ErrNotFound, domain.MsgEventNotFoundForDelete)
			}
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	})
}

// checkLocationCapacity share-locks the target location and rejects an event
// larger than the venue.
func checkLocationCapacity(ctx context.Context, repos domain.Repositories, in *domain.EventInput) error {
	location, err := repos.EventLocations().GetForShare(ctx, in.EventLocationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewError(domain.ErrValidation, domain.MsgEventLocationMissing)
		}
		return fmt.Errorf("lock event location: %w", err)
	}
	if in.MaxAssistance > location.MaxCapacity {
		return domain.NewError(domain.ErrValidation, domain.MsgAssistanceOverCapacity)
	}
	return nil
}

func replaceTags(ctx context.Context, repos domain.Repositories, eventID int64, names []string, clear bool) error {
	if clear {
		if err := repos.Tags().ClearEventTags(ctx, eventID); err != nil {
			return fmt.Errorf("clear event tags: %w", err)
		}
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, err := repos.Tags().EnsureTagForEvent(ctx, eventID, name); err != nil {
			return fmt.Errorf("tag event: %w", err)
		}
	}
	return nil
}

func attachTags(ctx context.Context, repos domain.Repositories, event *domain.Event) error {
	tags, err := repos.Tags().ListTagsByEventID(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("list event tags: %w", err)
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	event.Tags = tags
	return nil
}
