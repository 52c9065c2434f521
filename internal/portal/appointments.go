package portal

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

// AppointmentStore caches each user's appointment list and applies
// mutations to it once the API confirms them.
type AppointmentStore struct {
	api      client.AppointmentAPI
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time
	lists    *query[[]domain.Appointment]
	locks    keyedMutex

	mu       sync.Mutex
	pending  map[string]bool
	lastErr  error
	onChange []func(id string)
}

func NewAppointmentStore(api client.AppointmentAPI, notifier Notifier, stale time.Duration, now func() time.Time, log zerolog.Logger) *AppointmentStore {
	return &AppointmentStore{
		api:      api,
		notifier: notifier,
		log:      log,
		now:      now,
		lists:    newQuery[[]domain.Appointment](stale, now),
		pending:  map[string]bool{},
	}
}

// OnChange registers fn to run after an appointment was created or updated.
func (s *AppointmentStore) OnChange(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Load returns the user's appointments, fetching them when the cached copy
// is missing or stale. An empty userID skips the fetch.
func (s *AppointmentStore) Load(ctx context.Context, userID string) ([]domain.Appointment, error) {
	if userID == "" {
		return nil, nil
	}
	list, err := s.lists.get(ctx, userID, func(ctx context.Context) ([]domain.Appointment, error) {
		return s.api.ListByCustomer(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(list), nil
}

// Upcoming returns cached appointments starting after now, soonest first.
func (s *AppointmentStore) Upcoming(userID string) []domain.Appointment {
	list, _ := s.lists.peek(userID)
	upcoming, _ := domain.Partition(list, s.now())
	return upcoming
}

// Past returns cached appointments starting at or before now, latest first.
func (s *AppointmentStore) Past(userID string) []domain.Appointment {
	list, _ := s.lists.peek(userID)
	_, past := domain.Partition(list, s.now())
	return past
}

// Cached returns the cached list without fetching.
func (s *AppointmentStore) Cached(userID string) ([]domain.Appointment, bool) {
	list, ok := s.lists.peek(userID)
	return slices.Clone(list), ok
}

func (s *AppointmentStore) Loading(userID string) bool { return s.lists.isLoading(userID) }

// LoadErr is the error of the last failed Load for userID.
func (s *AppointmentStore) LoadErr(userID string) error { return s.lists.err(userID) }

// Err is the error of the last failed mutation, cleared by the next success.
func (s *AppointmentStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Pending reports whether a mutation of id is in flight.
func (s *AppointmentStore) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[id]
}

// Create books an appointment and appends the server record to the cached
// list of userID.
func (s *AppointmentStore) Create(ctx context.Context, userID string, in client.NewAppointment) (*domain.Appointment, error) {
	created, err := s.api.Create(ctx, in)
	if err != nil {
		s.fail("create", err)
		return nil, err
	}
	s.lists.update(userID, func(list []domain.Appointment) ([]domain.Appointment, bool) {
		return append(slices.Clone(list), *created), true
	})
	s.succeed(created.ID)
	return created, nil
}

// Update sends patch for an appointment cached under userID and merges the
// answer into the cache. Mutations of one id run one at a time.
func (s *AppointmentStore) Update(ctx context.Context, userID, id string, patch domain.AppointmentPatch) (*domain.Appointment, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	if !s.cachedHas(userID, id) {
		err := fmt.Errorf("appointment %s: %w", id, client.ErrNotFound)
		s.fail("update", err)
		return nil, err
	}

	s.setPending(id, true)
	defer s.setPending(id, false)

	updated, err := s.api.Update(ctx, id, patch)
	if err != nil {
		s.fail("update", err)
		return nil, err
	}

	var merged domain.Appointment
	s.lists.update(userID, func(list []domain.Appointment) ([]domain.Appointment, bool) {
		i := slices.IndexFunc(list, func(a domain.Appointment) bool { return a.ID == id })
		if i < 0 {
			return list, false
		}
		next := slices.Clone(list)
		next[i] = mergeAppointment(next[i], *updated)
		merged = next[i]
		return next, true
	})
	if merged.ID == "" {
		merged = *updated
	}
	s.succeed(id)
	return &merged, nil
}

// Cancel sets the status of id to cancelled.
func (s *AppointmentStore) Cancel(ctx context.Context, userID, id string) (*domain.Appointment, error) {
	return s.Update(ctx, userID, id, domain.CancelPatch())
}

// Reschedule moves id to start and marks it rescheduled.
func (s *AppointmentStore) Reschedule(ctx context.Context, userID, id string, start time.Time) (*domain.Appointment, error) {
	return s.Update(ctx, userID, id, domain.ReschedulePatch(start))
}

// Invalidate forces the next Load of userID to fetch.
func (s *AppointmentStore) Invalidate(userID string) { s.lists.invalidate(userID) }

// Reset drops every cached list and the last error.
func (s *AppointmentStore) Reset() {
	s.lists.reset()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

func (s *AppointmentStore) cachedHas(userID, id string) bool {
	list, ok := s.lists.peek(userID)
	return ok && slices.ContainsFunc(list, func(a domain.Appointment) bool { return a.ID == id })
}

func (s *AppointmentStore) setPending(id string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v {
		s.pending[id] = true
		return
	}
	delete(s.pending, id)
}

func (s *AppointmentStore) fail(op string, err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.log.Warn().Err(err).Str("op", op).Msg("appointment mutation failed")
	s.notifier.Error(fmt.Sprintf("Failed to %s appointment: %s", op, err.Error()))
}

func (s *AppointmentStore) succeed(id string) {
	s.mu.Lock()
	s.lastErr = nil
	hooks := slices.Clone(s.onChange)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(id)
	}
}

// mergeAppointment overlays the non-zero fields of upd on cur.
func mergeAppointment(cur, upd domain.Appointment) domain.Appointment {
	out := cur
	if upd.StaffID != "" {
		out.StaffID = upd.StaffID
	}
	if upd.Staff.ID != "" {
		out.Staff = upd.Staff
	}
	if upd.ServiceID != "" {
		out.ServiceID = upd.ServiceID
	}
	if upd.Service.ID != "" {
		out.Service = upd.Service
	}
	if upd.CustomerName != "" {
		out.CustomerName = upd.CustomerName
	}
	if !upd.StartTime.IsZero() {
		out.StartTime = upd.StartTime
	}
	if !upd.EndTime.IsZero() {
		out.EndTime = upd.EndTime
	}
	if upd.Status != "" {
		out.Status = upd.Status
	}
	out.Notes = upd.Notes
	if !upd.UpdatedAt.IsZero() {
		out.UpdatedAt = upd.UpdatedAt
	}
	if upd.Version != 0 {
		out.Version = upd.Version
	}
	return out
}

// keyedMutex hands out one mutex per key and forgets it when unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = map[string]*refLock{}
	}
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
