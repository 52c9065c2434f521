package portal

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

const defaultDetailCacheSize = 128

// AppointmentDetail is the view of one appointment with the staff member's
// and service's descriptive fields inlined.
type AppointmentDetail struct {
	ID           string
	Status       domain.AppointmentStatus
	StartTime    time.Time
	EndTime      time.Time
	Notes        string
	CustomerID   string
	CustomerName string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	StaffID          string
	StaffName        string
	StaffEmail       string
	StaffPhone       string
	StaffSpecialties []string

	ServiceID          string
	ServiceName        string
	ServiceDescription string
	Price              decimal.Decimal
	DurationMinutes    int
}

// AppointmentDetailStore fetches single appointments for the detail view.
type AppointmentDetailStore struct {
	appointments client.AppointmentAPI
	staff        client.StaffAPI
	services     client.ServiceAPI
	cache        *expirable.LRU[string, AppointmentDetail]
	group        singleflight.Group
	log          zerolog.Logger

	mu  sync.Mutex
	gen uint64
}

func NewAppointmentDetailStore(appointments client.AppointmentAPI, staff client.StaffAPI, services client.ServiceAPI, stale time.Duration, log zerolog.Logger) *AppointmentDetailStore {
	return &AppointmentDetailStore{
		appointments: appointments,
		staff:        staff,
		services:     services,
		cache:        expirable.NewLRU[string, AppointmentDetail](defaultDetailCacheSize, nil, stale),
		log:          log,
	}
}

// Get returns the detail of id. An empty id disables the lookup and yields nil.
func (s *AppointmentDetailStore) Get(ctx context.Context, id string) (*AppointmentDetail, error) {
	if id == "" {
		return nil, nil
	}
	if d, ok := s.cache.Get(id); ok {
		return &d, nil
	}
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(id, func() (any, error) {
		gen := s.generation()
		apt, err := withRetry(shared, func(ctx context.Context) (*domain.Appointment, error) {
			return s.appointments.Get(ctx, id)
		})
		if err != nil {
			return nil, err
		}
		d := s.denormalize(shared, *apt)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen {
			s.cache.Add(id, d)
		}
		return d, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		d := res.Val.(AppointmentDetail)
		return &d, nil
	}
}

func (s *AppointmentDetailStore) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Invalidate drops the cached detail of id.
func (s *AppointmentDetailStore) Invalidate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.group.Forget(id)
	s.cache.Remove(id)
}

// Reset empties the cache. Fetches already in flight are not stored.
func (s *AppointmentDetailStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.cache.Purge()
}

// denormalize starts from the snapshots embedded in the appointment and
// refreshes them from the catalog when it answers.
func (s *AppointmentDetailStore) denormalize(ctx context.Context, a domain.Appointment) AppointmentDetail {
	d := AppointmentDetail{
		ID:           a.ID,
		Status:       a.Status,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		Notes:        a.Notes,
		CustomerID:   a.CustomerID,
		CustomerName: a.CustomerName,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,

		StaffID:          a.StaffID,
		StaffName:        a.Staff.Name,
		StaffEmail:       a.Staff.Email,
		StaffPhone:       a.Staff.Phone,
		StaffSpecialties: slices.Clone(a.Staff.Specialties),

		ServiceID:          a.ServiceID,
		ServiceName:        a.Service.Name,
		ServiceDescription: a.Service.Description,
		Price:              a.Service.Price,
		DurationMinutes:    a.Service.DurationMinutes,
	}

	if stf, err := s.staff.Get(ctx, a.StaffID); err == nil {
		d.StaffName = stf.Name
		d.StaffEmail = stf.Email
		d.StaffPhone = stf.Phone
		d.StaffSpecialties = slices.Clone(stf.Specialties)
	} else {
		s.log.Debug().Err(err).Str("staff_id", a.StaffID).Msg("staff lookup failed, using snapshot")
	}
	if svc, err := s.services.Get(ctx, a.ServiceID); err == nil {
		d.ServiceName = svc.Name
		d.ServiceDescription = svc.Description
	} else {
		s.log.Debug().Err(err).Str("service_id", a.ServiceID).Msg("service lookup failed, using snapshot")
	}
	return d
}
