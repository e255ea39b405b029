//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"eventsplatform/internal/domain"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("events_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, MigrateUp(dsn, "migrations"))

	db, err := Open(ctx, dsn, PoolConfig{MaxOpenConns: 20, MaxIdleConns: 5})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

// enroll mirrors the enrollment service's transaction shape without its date rules.
func enroll(ctx context.Context, store *Store, eventID, userID int64) error {
	return store.WithTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		ev, err := repos.Events().GetForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		n, err := repos.Enrollments().CountByEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if n >= ev.MaxAssistance {
			return domain.ErrCapacityExceeded
		}
		return repos.Enrollments().Create(ctx, domain.NewEnrollment(eventID, userID, time.Now()))
	})
}

func TestIntegration_ConcurrentEnrollmentsRespectCapacity(t *testing.T) {
	store := setupPostgres(t)
	ctx := context.Background()

	owner := domain.NewUser("Owner", "Owner", "owner@example.com", "hash")
	require.NoError(t, store.Users().Create(ctx, owner))

	loc := &domain.EventLocation{Name: "Hall", FullAddress: "Main st", MaxCapacity: 100, Latitude: 1, Longitude: 1, CreatorUserID: owner.ID}
	require.NoError(t, store.EventLocations().Create(ctx, loc))

	const capacity = 5
	ev := &domain.Event{
		Name: "Concert", Description: "Loud", EventLocationID: loc.ID, StartDate: time.Now().AddDate(0, 1, 0),
		EnabledForEnrollment: true, MaxAssistance: capacity, CreatorUserID: owner.ID,
	}
	require.NoError(t, store.Events().Create(ctx, ev))

	const attendees = 40
	userIDs := make([]int64, attendees)
	for i := range userIDs {
		u := domain.NewUser("User", "Test", fmt.Sprintf("user%d@example.com", i), "hash")
		require.NoError(t, store.Users().Create(ctx, u))
		userIDs[i] = u.ID
	}

	var wg sync.WaitGroup
	var ok, full atomic.Int32
	for _, uid := range userIDs {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			err := enroll(ctx, store, ev.ID, uid)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrCapacityExceeded):
				full.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(uid)
	}
	wg.Wait()

	require.Equal(t, int32(capacity), ok.Load())
	require.Equal(t, int32(attendees-capacity), full.Load())
	n, err := store.Enrollments().CountByEvent(ctx, ev.ID)
	require.NoError(t, err)
	require.Equal(t, capacity, n)
}

func TestIntegration_DoubleEnrollHitsPrimaryKey(t *testing.T) {
	store := setupPostgres(t)
	ctx := context.Background()

	u := domain.NewUser("Julia", "Perez", "julia@example.com", "hash")
	require.NoError(t, store.Users().Create(ctx, u))
	loc := &domain.EventLocation{Name: "Hall", FullAddress: "Main st", MaxCapacity: 10, Latitude: 1, Longitude: 1, CreatorUserID: u.ID}
	require.NoError(t, store.EventLocations().Create(ctx, loc))
	ev := &domain.Event{
		Name: "Talk", Description: "Go", EventLocationID: loc.ID, StartDate: time.Now().AddDate(0, 0, 7),
		EnabledForEnrollment: true, MaxAssistance: 10, CreatorUserID: u.ID,
	}
	require.NoError(t, store.Events().Create(ctx, ev))

	require.NoError(t, store.Enrollments().Create(ctx, domain.NewEnrollment(ev.ID, u.ID, time.Now())))
	err := store.Enrollments().Create(ctx, domain.NewEnrollment(ev.ID, u.ID, time.Now()))
	require.ErrorIs(t, err, domain.ErrAlreadyEnrolled)

	err = store.Events().Delete(ctx, ev.ID)
	require.ErrorIs(t, err, domain.ErrEventHasEnrollments)

	removed, err := store.Enrollments().Delete(ctx, ev.ID, u.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)
	removed, err = store.Enrollments().Delete(ctx, ev.ID, u.ID)
	require.NoError(t, err)
	require.Nil(t, removed)
}
