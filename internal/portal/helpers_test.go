package portal

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: fixedNow} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingNotifier struct {
	mu        sync.Mutex
	errors    []string
	successes []string
}

func (n *recordingNotifier) Success(m string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, m)
}

func (n *recordingNotifier) Error(m string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, m)
}

func (n *recordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.errors)
}

// stubAppointments is a scriptable AppointmentAPI.
type stubAppointments struct {
	mu          sync.Mutex
	list        []domain.Appointment
	listErr     error
	listCalls   int
	createCalls int
	updateCalls int
	updateErr   error
	// beforeUpdate runs inside Update before the answer is built.
	beforeUpdate func()
	// beforeList runs at the start of ListByCustomer, outside the lock.
	beforeList func()
}

func (s *stubAppointments) ListByCustomer(_ context.Context, _ string) ([]domain.Appointment, error) {
	if s.beforeList != nil {
		s.beforeList()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return slices.Clone(s.list), nil
}

func (s *stubAppointments) Get(_ context.Context, id string) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.list {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, client.ErrNotFound
}

func (s *stubAppointments) Create(_ context.Context, in client.NewAppointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	a := domain.Appointment{
		ID:        "apt-new",
		StaffID:   in.StaffID,
		ServiceID: in.ServiceID,
		StartTime: in.StartTime,
		EndTime:   in.StartTime.Add(30 * time.Minute),
		Status:    domain.StatusScheduled,
	}
	s.list = append(s.list, a)
	return &a, nil
}

func (s *stubAppointments) Update(_ context.Context, id string, patch domain.AppointmentPatch) (*domain.Appointment, error) {
	if s.beforeUpdate != nil {
		s.beforeUpdate()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	for i, a := range s.list {
		if a.ID == id {
			s.list[i] = a.Apply(patch, fixedNow)
			s.list[i].Version++
			out := s.list[i]
			return &out, nil
		}
	}
	return nil, client.ErrNotFound
}

func at(days, hour int) time.Time {
	return time.Date(fixedNow.Year(), fixedNow.Month(), fixedNow.Day()+days, hour, 0, 0, 0, time.UTC)
}
