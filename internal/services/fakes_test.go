package services

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"eventsplatform/internal/domain"
)

type enrollmentKey struct{ eventID, userID int64 }

type memData struct {
	nextID      int64
	events      map[int64]domain.Event
	locations   map[int64]domain.EventLocation
	catalogue   map[int64]bool
	enrollments map[enrollmentKey]domain.Enrollment
	users       map[int64]domain.User
	eventTags   map[int64][]string
}

func (d *memData) clone() *memData {
	c := *d
	c.events = maps.Clone(d.events)
	c.locations = maps.Clone(d.locations)
	c.catalogue = maps.Clone(d.catalogue)
	c.enrollments = maps.Clone(d.enrollments)
	c.users = maps.Clone(d.users)
	c.eventTags = make(map[int64][]string, len(d.eventTags))
	for k, v := range d.eventTags {
		c.eventTags[k] = slices.Clone(v)
	}
	return &c
}

// fakeStore is an in-memory domain.Store. WithTx holds txMu for the whole unit of
// work, which serialises transactions the way the event row lock does in
// PostgreSQL, and restores a snapshot when fn fails.
type fakeStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	d    *memData
	// fail injects an error into the named repository call.
	fail map[string]error
	// beforeCreateEnrollment runs inside Enrollments().Create, before the insert.
	beforeCreateEnrollment func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		d: &memData{
			events:      map[int64]domain.Event{},
			locations:   map[int64]domain.EventLocation{},
			catalogue:   map[int64]bool{},
			enrollments: map[enrollmentKey]domain.Enrollment{},
			users:       map[int64]domain.User{},
			eventTags:   map[int64][]string{},
		},
		fail: map[string]error{},
	}
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.d.clone()
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *fakeStore) Ping(ctx context.Context) error { return s.failure("Ping") }

func (s *fakeStore) Events() domain.EventRepository                 { return fakeEvents{s} }
func (s *fakeStore) EventLocations() domain.EventLocationRepository { return fakeLocations{s} }
func (s *fakeStore) Enrollments() domain.EnrollmentRepository       { return fakeEnrollments{s} }
func (s *fakeStore) Users() domain.UserRepository                   { return fakeUsers{s} }
func (s *fakeStore) Tags() domain.TagRepository                     { return fakeTags{s} }

func (s *fakeStore) failure(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fail[op]
}

func (s *fakeStore) id() int64 {
	s.d.nextID++
	return s.d.nextID
}

// seed helpers

func (s *fakeStore) addUser(first string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := domain.User{ID: s.id(), FirstName: first, LastName: "Test", Username: strings.ToLower(first) + "@example.com"}
	s.d.users[u.ID] = u
	return &u
}

func (s *fakeStore) addLocation(ownerID int64, capacity int) *domain.EventLocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := domain.EventLocation{ID: s.id(), Name: "Hall", FullAddress: "Main st 123", MaxCapacity: capacity, CreatorUserID: ownerID}
	s.d.locations[l.ID] = l
	return &l
}

func (s *fakeStore) addEvent(e domain.Event) *domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	s.d.events[e.ID] = e
	return &e
}

func (s *fakeStore) addEnrollment(eventID, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.enrollments[enrollmentKey{eventID, userID}] = domain.Enrollment{EventID: eventID, UserID: userID}
}

func (s *fakeStore) enrollmentCount(eventID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.d.enrollments {
		if k.eventID == eventID {
			n++
		}
	}
	return n
}

func (s *fakeStore) eventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.d.events)
}

func (s *fakeStore) storedEvent(id int64) (domain.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.d.events[id]
	return e, ok
}

func (s *fakeStore) storedTags(eventID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.d.eventTags[eventID])
}

type fakeEvents struct{ s *fakeStore }

func (r fakeEvents) Create(ctx context.Context, e *domain.Event) error {
	if err := r.s.failure("Events.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.locations[e.EventLocationID]; !ok {
		return domain.ErrLocationReference
	}
	e.ID = r.s.id()
	r.s.d.events[e.ID] = *e
	return nil
}

func (r fakeEvents) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if err := r.s.failure("Events.GetByID"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.d.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if u, ok := r.s.d.users[e.CreatorUserID]; ok {
		sum := u.Summary()
		e.CreatorUser = &sum
	}
	if l, ok := r.s.d.locations[e.EventLocationID]; ok {
		e.EventLocation = &l
	}
	return &e, nil
}

func (r fakeEvents) GetForUpdate(ctx context.Context, id int64) (*domain.Event, error) {
	if err := r.s.failure("Events.GetForUpdate"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.d.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r fakeEvents) List(ctx context.Context, f domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	if err := r.s.failure("Events.List"); err != nil {
		return nil, 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []*domain.Event
	for _, e := range r.s.d.events {
		if f.Name != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.StartDate != nil && e.StartDate.Format(time.DateOnly) != f.StartDate.Format(time.DateOnly) {
			continue
		}
		if f.Tag != "" && !slices.ContainsFunc(r.s.d.eventTags[e.ID], func(t string) bool {
			return strings.Contains(strings.ToLower(t), strings.ToLower(f.Tag))
		}) {
			continue
		}
		matched = append(matched, &e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := len(matched)
	start := min(p.Offset, total)
	end := min(start+p.Limit, total)
	return matched[start:end], total, nil
}

func (r fakeEvents) Update(ctx context.Context, e *domain.Event) error {
	if err := r.s.failure("Events.Update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.d.locations[e.EventLocationID]; !ok {
		return domain.ErrLocationReference
	}
	stored := *e
	stored.CreatorUser, stored.EventLocation, stored.Tags = nil, nil, nil
	r.s.d.events[e.ID] = stored
	return nil
}

func (r fakeEvents) Delete(ctx context.Context, id int64) error {
	if err := r.s.failure("Events.Delete"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.events[id]; !ok {
		return domain.ErrNotFound
	}
	for k := range r.s.d.enrollments {
		if k.eventID == id {
			return domain.ErrEventHasEnrollments
		}
	}
	delete(r.s.d.events, id)
	delete(r.s.d.eventTags, id)
	return nil
}

type fakeLocations struct{ s *fakeStore }

func (r fakeLocations) Create(ctx context.Context, l *domain.EventLocation) error {
	if err := r.s.failure("EventLocations.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = r.s.id()
	r.s.d.locations[l.ID] = *l
	return nil
}

func (r fakeLocations) get(id int64) (*domain.EventLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.d.locations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (r fakeLocations) GetByID(ctx context.Context, id int64) (*domain.EventLocation, error) {
	return r.get(id)
}

func (r fakeLocations) GetForUpdate(ctx context.Context, id int64) (*domain.EventLocation, error) {
	return r.get(id)
}

func (r fakeLocations) GetForShare(ctx context.Context, id int64) (*domain.EventLocation, error) {
	return r.get(id)
}

func (r fakeLocations) ListByCreator(ctx context.Context, userID int64, p domain.PaginationParams) ([]*domain.EventLocation, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.EventLocation
	for _, l := range r.s.d.locations {
		if l.CreatorUserID == userID {
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	start := min(p.Offset, total)
	end := min(start+p.Limit, total)
	return out[start:end], total, nil
}

func (r fakeLocations) Update(ctx context.Context, l *domain.EventLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.locations[l.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.locations[l.ID] = *l
	return nil
}

func (r fakeLocations) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.locations[id]; !ok {
		return domain.ErrNotFound
	}
	for _, e := range r.s.d.events {
		if e.EventLocationID == id {
			return domain.ErrLocationInUse
		}
	}
	delete(r.s.d.locations, id)
	return nil
}

func (r fakeLocations) CountEvents(ctx context.Context, id int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, e := range r.s.d.events {
		if e.EventLocationID == id {
			n++
		}
	}
	return n, nil
}

func (r fakeLocations) LocationExists(ctx context.Context, locationID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.d.catalogue[locationID], nil
}

type fakeEnrollments struct{ s *fakeStore }

func (r fakeEnrollments) Exists(ctx context.Context, eventID, userID int64) (bool, error) {
	if err := r.s.failure("Enrollments.Exists"); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.d.enrollments[enrollmentKey{eventID, userID}]
	return ok, nil
}

func (r fakeEnrollments) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	if err := r.s.failure("Enrollments.CountByEvent"); err != nil {
		return 0, err
	}
	return r.s.enrollmentCount(eventID), nil
}

func (r fakeEnrollments) Create(ctx context.Context, e *domain.Enrollment) error {
	if r.s.beforeCreateEnrollment != nil {
		r.s.beforeCreateEnrollment()
	}
	if err := r.s.failure("Enrollments.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := enrollmentKey{e.EventID, e.UserID}
	if _, ok := r.s.d.enrollments[key]; ok {
		return domain.ErrAlreadyEnrolled
	}
	r.s.d.enrollments[key] = *e
	return nil
}

func (r fakeEnrollments) Delete(ctx context.Context, eventID, userID int64) (*domain.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := enrollmentKey{eventID, userID}
	e, ok := r.s.d.enrollments[key]
	if !ok {
		return nil, nil
	}
	delete(r.s.d.enrollments, key)
	return &e, nil
}

func (r fakeEnrollments) ListByEvent(ctx context.Context, eventID int64) ([]*domain.EnrollmentDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.EnrollmentDetail
	for k, e := range r.s.d.enrollments {
		if k.eventID != eventID {
			continue
		}
		u := r.s.d.users[k.userID]
		out = append(out, &domain.EnrollmentDetail{User: u.Summary(), Attended: e.Attended, Rating: e.Rating, Description: e.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User.ID < out[j].User.ID })
	return out, nil
}

type fakeUsers struct{ s *fakeStore }

func (r fakeUsers) Create(ctx context.Context, u *domain.User) error {
	if err := r.s.failure("Users.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.d.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = r.s.id()
	r.s.d.users[u.ID] = *u
	return nil
}

func (r fakeUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.d.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r fakeUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

type fakeTags struct{ s *fakeStore }

func (r fakeTags) EnsureTagForEvent(ctx context.Context, eventID int64, name string) (int64, error) {
	if err := r.s.failure("Tags.EnsureTagForEvent"); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !slices.Contains(r.s.d.eventTags[eventID], name) {
		r.s.d.eventTags[eventID] = append(r.s.d.eventTags[eventID], name)
	}
	return int64(len(r.s.d.eventTags[eventID])), nil
}

func (r fakeTags) ClearEventTags(ctx context.Context, eventID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.d.eventTags, eventID)
	return nil
}

func (r fakeTags) ListTagsByEventID(ctx context.Context, eventID int64) ([]*domain.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return toTags(r.s.d.eventTags[eventID]), nil
}

func (r fakeTags) ListTagsByEventIDs(ctx context.Context, eventIDs []int64) (map[int64][]*domain.Tag, error) {
	if err := r.s.failure("Tags.ListTagsByEventIDs"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[int64][]*domain.Tag, len(eventIDs))
	for _, id := range eventIDs {
		if names := r.s.d.eventTags[id]; len(names) > 0 {
			out[id] = toTags(names)
		}
	}
	return out, nil
}

func toTags(names []string) []*domain.Tag {
	tags := make([]*domain.Tag, 0, len(names))
	for i, n := range names {
		tags = append(tags, &domain.Tag{ID: int64(i + 1), Name: n})
	}
	return tags
}

var errBoom = errors.New("boom")

// fixedClock pins "now" for date eligibility checks.
func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

var _ domain.Store = (*fakeStore)(nil)
