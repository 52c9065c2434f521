package live

import (
	"context"
	"net/http"
	"net/url"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

type authAPI struct{ c *Client }

func (a authAPI) Login(ctx context.Context, creds client.Credentials) (*domain.Tokens, error) {
	var out domain.Tokens
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a authAPI) Register(ctx context.Context, reg client.Registration) (*domain.User, error) {
	var out domain.User
	if err := a.c.do(ctx, http.MethodPost, "/auth/register", a.c.scoped(nil), reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a authAPI) Logout(ctx context.Context) error {
	return a.c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

func (a authAPI) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := a.c.do(ctx, http.MethodGet, "/user/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type appointmentAPI struct{ c *Client }

func (a appointmentAPI) ListByCustomer(ctx context.Context, customerID string) ([]domain.Appointment, error) {
	q := a.c.scoped(url.Values{"customerId": {customerID}})
	var out []domain.Appointment
	if err := a.c.do(ctx, http.MethodGet, "/appointments", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a appointmentAPI) Get(ctx context.Context, id string) (*domain.Appointment, error) {
	var out domain.Appointment
	if err := a.c.do(ctx, http.MethodGet, "/appointments/"+url.PathEscape(id), a.c.scoped(nil), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a appointmentAPI) Create(ctx context.Context, in client.NewAppointment) (*domain.Appointment, error) {
	var out domain.Appointment
	if err := a.c.do(ctx, http.MethodPost, "/appointments", a.c.scoped(nil), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a appointmentAPI) Update(ctx context.Context, id string, patch domain.AppointmentPatch) (*domain.Appointment, error) {
	var out domain.Appointment
	if err := a.c.do(ctx, http.MethodPatch, "/appointments/"+url.PathEscape(id), a.c.scoped(nil), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type serviceAPI struct{ c *Client }

func (s serviceAPI) List(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	if err := s.c.do(ctx, http.MethodGet, "/services", s.c.scoped(nil), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s serviceAPI) Get(ctx context.Context, id string) (*domain.Service, error) {
	var out domain.Service
	if err := s.c.do(ctx, http.MethodGet, "/services/"+url.PathEscape(id), s.c.scoped(nil), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s serviceAPI) ByStaff(ctx context.Context, staffID string) ([]domain.Service, error) {
	var out []domain.Service
	if err := s.c.do(ctx, http.MethodGet, "/services/staff/"+url.PathEscape(staffID), s.c.scoped(nil), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type staffAPI struct{ c *Client }

func (s staffAPI) List(ctx context.Context) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	if err := s.c.do(ctx, http.MethodGet, "/staff", s.c.scoped(nil), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s staffAPI) Get(ctx context.Context, id string) (*domain.StaffMember, error) {
	var out domain.StaffMember
	if err := s.c.do(ctx, http.MethodGet, "/staff/"+url.PathEscape(id), s.c.scoped(nil), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s staffAPI) ByService(ctx context.Context, serviceID string) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	if err := s.c.do(ctx, http.MethodGet, "/staff/service/"+url.PathEscape(serviceID), s.c.scoped(nil), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type settingsAPI struct{ c *Client }

func (s settingsAPI) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	var out domain.BusinessSettings
	if err := s.c.do(ctx, http.MethodGet, "/settings", s.c.scoped(nil), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s settingsAPI) Save(ctx context.Context, in domain.BusinessSettings) (*domain.BusinessSettings, error) {
	var out domain.BusinessSettings
	if err := s.c.do(ctx, http.MethodPut, "/settings", s.c.scoped(nil), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
