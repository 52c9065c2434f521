package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	users map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubCustomerRepo struct {
	byID map[string]domain.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{byID: make(map[string]domain.Customer)}
}

func (r *stubCustomerRepo) List(_ context.Context, businessID string) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, c := range r.byID {
		if c.BusinessID == businessID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id, businessID string) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok || c.BusinessID != businessID {
		return nil, domain.ErrCustomerNotFound
	}
	return &c, nil
}

func (r *stubCustomerRepo) Upsert(_ context.Context, c *domain.Customer) error {
	r.byID[c.ID] = *c
	return nil
}

type stubTokenStore struct {
	refresh map[string]string
	revoked map[string]time.Duration
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{refresh: make(map[string]string), revoked: make(map[string]time.Duration)}
}

func (s *stubTokenStore) SaveRefresh(_ context.Context, token, userID string, _ time.Duration) error {
	s.refresh[token] = userID
	return nil
}

func (s *stubTokenStore) LookupRefresh(_ context.Context, token string) (string, error) {
	id, ok := s.refresh[token]
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}

func (s *stubTokenStore) DeleteRefresh(_ context.Context, token string) error {
	delete(s.refresh, token)
	return nil
}

func (s *stubTokenStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.revoked[tokenID] = ttl
	return nil
}

func (s *stubTokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := s.revoked[tokenID]
	return ok, nil
}

type stubAppointmentRepo struct {
	mu        sync.Mutex
	byID      map[string]domain.Appointment
	conflicts int // number of Replace calls that report a version conflict
	replaces  int
	createErr error
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{byID: make(map[string]domain.Appointment)}
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = *a
	return nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id, businessID string) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok || a.BusinessID != businessID {
		return nil, domain.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *stubAppointmentRepo) List(_ context.Context, f ports.AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Appointment
	for _, a := range r.byID {
		if a.BusinessID != f.BusinessID {
			continue
		}
		if f.CustomerID != "" && a.CustomerID != f.CustomerID {
			continue
		}
		if f.StaffID != "" && a.StaffID != f.StaffID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *stubAppointmentRepo) Replace(_ context.Context, a *domain.Appointment, expected int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaces++
	if r.conflicts > 0 {
		r.conflicts--
		return domain.ErrVersionConflict
	}
	cur, ok := r.byID[a.ID]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	if cur.Version != expected {
		return domain.ErrVersionConflict
	}
	r.byID[a.ID] = *a
	return nil
}

type stubServiceRepo struct {
	byID map[string]domain.Service
}

func (r *stubServiceRepo) List(_ context.Context, businessID string) ([]domain.Service, error) {
	var out []domain.Service
	for _, s := range r.byID {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id, businessID string) (*domain.Service, error) {
	s, ok := r.byID[id]
	if !ok || s.BusinessID != businessID {
		return nil, domain.ErrServiceNotFound
	}
	return &s, nil
}

func (r *stubServiceRepo) FindByIDs(_ context.Context, ids []string, businessID string) ([]domain.Service, error) {
	var out []domain.Service
	for _, id := range ids {
		if s, ok := r.byID[id]; ok && s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubServiceRepo) Upsert(_ context.Context, s *domain.Service) error {
	r.byID[s.ID] = *s
	return nil
}

func (r *stubServiceRepo) Delete(_ context.Context, id, _ string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrServiceNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubStaffRepo struct {
	byID map[string]domain.StaffMember
}

func (r *stubStaffRepo) List(_ context.Context, businessID string) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	for _, m := range r.byID {
		if m.BusinessID == businessID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubStaffRepo) FindByID(_ context.Context, id, businessID string) (*domain.StaffMember, error) {
	m, ok := r.byID[id]
	if !ok || m.BusinessID != businessID {
		return nil, domain.ErrStaffNotFound
	}
	return &m, nil
}

func (r *stubStaffRepo) FindByService(_ context.Context, serviceID, businessID string) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	for _, m := range r.byID {
		if m.BusinessID == businessID && slices.Contains(m.ServiceIDs, serviceID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubStaffRepo) Upsert(_ context.Context, m *domain.StaffMember) error {
	r.byID[m.ID] = *m
	return nil
}

func (r *stubStaffRepo) Delete(_ context.Context, id, _ string) error {
	delete(r.byID, id)
	return nil
}

type stubIdempotency struct {
	keys map[string]string
}

func (s *stubIdempotency) Lookup(_ context.Context, businessID, key string) (string, bool, error) {
	id, ok := s.keys[businessID+":"+key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, businessID, key, id string) error {
	s.keys[businessID+":"+key] = id
	return nil
}

type stubPublisher struct {
	events []domain.AppointmentEvent
}

func (p *stubPublisher) Publish(_ context.Context, ev domain.AppointmentEvent) error {
	p.events = append(p.events, ev)
	return nil
}
