package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"eventsplatform/internal/delivery/http/helpers"
	"eventsplatform/internal/delivery/http/middleware"
	"eventsplatform/internal/domain"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newRequest builds a request with an optional JSON body, {id} path value and authenticated user.
func newRequest(t *testing.T, method, target string, body any, pathID string, userID int64) *http.Request {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rdr)
	if pathID != "" {
		req.SetPathValue("id", pathID)
	}
	if userID != 0 {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	return req
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// fakeEnrollmentService keeps per-event rosters and applies the capacity rule,
// returning the same domain errors as the real service.
type fakeEnrollmentService struct {
	mu       sync.Mutex
	capacity map[int64]int
	rosters  map[int64]map[int64]bool
	err      error
}

func newFakeEnrollmentService() *fakeEnrollmentService {
	return &fakeEnrollmentService{capacity: map[int64]int{}, rosters: map[int64]map[int64]bool{}}
}

func (f *fakeEnrollmentService) Enroll(ctx context.Context, eventID, userID int64) (*domain.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	capacity, ok := f.capacity[eventID]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, domain.MsgEventNotFound)
	}
	roster := f.rosters[eventID]
	if roster[userID] {
		return nil, domain.NewError(domain.ErrConflict, domain.MsgAlreadyEnrolled)
	}
	if len(roster) >= capacity {
		return nil, domain.NewError(domain.ErrCapacityExceeded, domain.MsgEventFull)
	}
	roster[userID] = true
	return &domain.Enrollment{EventID: eventID, UserID: userID}, nil
}

func (f *fakeEnrollmentService) Unenroll(ctx context.Context, eventID, userID int64) (*domain.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.capacity[eventID]; !ok {
		return nil, domain.NewError(domain.ErrNotFound, domain.MsgEventNotFound)
	}
	if !f.rosters[eventID][userID] {
		return nil, domain.NewError(domain.ErrConflict, domain.MsgNotEnrolled)
	}
	delete(f.rosters[eventID], userID)
	return &domain.Enrollment{EventID: eventID, UserID: userID}, nil
}

func (f *fakeEnrollmentService) ListEnrollments(ctx context.Context, eventID int64) ([]*domain.EnrollmentDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.capacity[eventID]; !ok {
		return nil, domain.NewError(domain.ErrNotFound, domain.MsgEventNotFound)
	}
	out := []*domain.EnrollmentDetail{}
	for userID := range f.rosters[eventID] {
		out = append(out, &domain.EnrollmentDetail{User: domain.UserSummary{ID: userID, Username: "u" + strconv.FormatInt(userID, 10)}})
	}
	return out, nil
}

func (f *fakeEnrollmentService) addEvent(id int64, capacity int) {
	f.capacity[id] = capacity
	f.rosters[id] = map[int64]bool{}
}

// fakeEventService records its inputs and returns canned results.
type fakeEventService struct {
	events    []*domain.Event
	total     int
	event     *domain.Event
	err       error
	gotFilter domain.EventFilter
	gotParams domain.PaginationParams
	gotInput  *domain.EventInput
	gotID     int64
	gotUserID int64
}

func (f *fakeEventService) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.gotFilter, f.gotParams = filter, params
	return f.events, f.total, f.err
}

func (f *fakeEventService) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	f.gotID = id
	return f.event, f.err
}

func (f *fakeEventService) Create(ctx context.Context, userID int64, in *domain.EventInput) (*domain.Event, error) {
	f.gotUserID, f.gotInput = userID, in
	return f.event, f.err
}

func (f *fakeEventService) Update(ctx context.Context, id, userID int64, in *domain.EventInput) (*domain.Event, error) {
	f.gotID, f.gotUserID, f.gotInput = id, userID, in
	return f.event, f.err
}

func (f *fakeEventService) Delete(ctx context.Context, id, userID int64) error {
	f.gotID, f.gotUserID = id, userID
	return f.err
}

type fakeEventLocationService struct {
	locations []*domain.EventLocation
	total     int
	location  *domain.EventLocation
	err       error
	gotID     int64
	gotUserID int64
	gotParams domain.PaginationParams
	gotInput  *domain.EventLocationInput
}

func (f *fakeEventLocationService) ListByUser(ctx context.Context, userID int64, params domain.PaginationParams) ([]*domain.EventLocation, int, error) {
	f.gotUserID, f.gotParams = userID, params
	return f.locations, f.total, f.err
}

func (f *fakeEventLocationService) GetByID(ctx context.Context, id, userID int64) (*domain.EventLocation, error) {
	f.gotID, f.gotUserID = id, userID
	return f.location, f.err
}

func (f *fakeEventLocationService) Create(ctx context.Context, userID int64, in *domain.EventLocationInput) (*domain.EventLocation, error) {
	f.gotUserID, f.gotInput = userID, in
	return f.location, f.err
}

func (f *fakeEventLocationService) Update(ctx context.Context, id, userID int64, in *domain.EventLocationInput) (*domain.EventLocation, error) {
	f.gotID, f.gotUserID, f.gotInput = id, userID, in
	return f.location, f.err
}

func (f *fakeEventLocationService) Delete(ctx context.Context, id, userID int64) error {
	f.gotID, f.gotUserID = id, userID
	return f.err
}

type fakeUserService struct {
	user        *domain.User
	token       string
	err         error
	gotInput    *domain.RegisterInput
	gotUsername string
	gotPassword string
}

func (f *fakeUserService) Register(ctx context.Context, in *domain.RegisterInput) (*domain.User, error) {
	f.gotInput = in
	return f.user, f.err
}

func (f *fakeUserService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	f.gotUsername, f.gotPassword = username, password
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.user, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }
