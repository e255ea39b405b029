package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventsplatform/internal/domain"
	"eventsplatform/internal/metrics"
)

// Clock returns the current instant. Services take one so tests can pin "today".
type Clock func() time.Time

type enrollmentService struct {
	store          domain.Store
	now            Clock
	contextTimeout time.Duration
}

// NewEnrollmentService returns the EnrollmentService. A nil clock means time.Now.
func NewEnrollmentService(store domain.Store, clock Clock, timeout time.Duration) domain.EnrollmentService {
	if clock == nil {
		clock = time.Now
	}
	return &enrollmentService{
		store:          store,
		now:            clock,
		contextTimeout: timeout,
	}
}

// Enroll runs every check against the locked event row, so concurrent enrollments
// for the same event are serialised and the capacity count cannot go stale.
func (s *enrollmentService) Enroll(ctx context.Context, eventID, userID int64) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var created *domain.Enrollment
	err := s.store.WithTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		event, err := lockEvent(ctx, repos, eventID, domain.MsgEventNotFound)
		if err != nil {
			return err
		}
		if !event.EnabledForEnrollment {
			return domain.NewError(domain.ErrInvalidState, domain.MsgEventNotEnabled)
		}
		now := s.now()
		if !startsAfterToday(event.StartDate, now) {
			return domain.NewError(domain.ErrInvalidState, domain.MsgEnrollPastEvent)
		}

		enrolled, err := repos.Enrollments().Exists(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("check enrollment: %w", err)
		}
		if enrolled {
			return domain.NewError(domain.ErrConflict, domain.MsgAlreadyEnrolled)
		}

		count, err := repos.Enrollments().CountByEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count enrollments: %w", err)
		}
		if count >= event.MaxAssistance {
			return domain.NewError(domain.ErrCapacityExceeded, domain.MsgEventFull)
		}

		enrollment := domain.NewEnrollment(eventID, userID, now)
		if err := repos.Enrollments().Create(ctx, enrollment); err != nil {
			if errors.Is(err, domain.ErrAlreadyEnrolled) {
				return domain.NewError(domain.ErrConflict, domain.MsgAlreadyEnrolled)
			}
			return fmt.Errorf("create enrollment: %w", err)
		}
		created = enrollment
		return nil
	})
	metrics.RecordEnrollment("enroll", err)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, eventID, userID int64) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var removed *domain.Enrollment
	err := s.store.WithTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		event, err := lockEvent(ctx, repos, eventID, domain.MsgEventNotFound)
		if err != nil {
			return err
		}
		if !startsAfterToday(event.StartDate, s.now()) {
			return domain.NewError(domain.ErrInvalidState, domain.MsgUnenrollPastEvent)
		}

		enrolled, err := repos.Enrollments().Exists(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("check enrollment: %w", err)
		}
		if !enrolled {
			return domain.NewError(domain.ErrConflict, domain.MsgNotEnrolled)
		}

		removed, err = repos.Enrollments().Delete(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("delete enrollment: %w", err)
		}
		return nil
	})
	metrics.RecordEnrollment("unenroll", err)
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, eventID int64) ([]*domain.EnrollmentDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.store.Events().GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, domain.MsgEventNotFound)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	enrollments, err := s.store.Enrollments().ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if enrollments == nil {
		enrollments = []*domain.EnrollmentDetail{}
	}
	return enrollments, nil
}

// lockEvent loads the event row FOR UPDATE and turns a missing row into a
// NotFound error carrying notFoundMsg.
func lockEvent(ctx context.Context, repos domain.Repositories, eventID int64, notFoundMsg string) (*domain.Event, error) {
	event, err := repos.Events().GetForUpdate(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, notFoundMsg)
		}
		return nil, fmt.Errorf("lock event: %w", err)
	}
	return event, nil
}

// startsAfterToday compares calendar days in now's location. An event starting
// at any time today is no longer eligible.
func startsAfterToday(start, now time.Time) bool {
	return truncateToDay(start.In(now.Location())).After(truncateToDay(now))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
