package mock

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

type appointmentAPI struct{ b *Backend }

func (a appointmentAPI) ListByCustomer(ctx context.Context, customerID string) ([]domain.Appointment, error) {
	if err := a.b.simulate(ctx, "appointments.list"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	return slices.Clone(a.b.customerAppointments(customerID)), nil
}

func (a appointmentAPI) Get(ctx context.Context, id string) (*domain.Appointment, error) {
	if err := a.b.simulate(ctx, "appointments.get"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	customerID, idx, ok := a.b.findAppointment(id)
	if !ok {
		return nil, fmt.Errorf("appointment %s: %w", id, client.ErrNotFound)
	}
	apt := a.b.appointments[customerID][idx]
	return &apt, nil
}

func (a appointmentAPI) Create(ctx context.Context, in client.NewAppointment) (*domain.Appointment, error) {
	if err := a.b.simulate(ctx, "appointments.create"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()

	customerID, customerName := in.CustomerID, in.CustomerName
	if customerID == "" {
		acc, ok := a.b.sessionUser()
		if !ok {
			return nil, &client.APIError{Status: http.StatusUnauthorized, Message: "not authenticated"}
		}
		customerID, customerName = acc.user.ID, acc.user.Name()
	}

	svc, ok := a.b.service(in.ServiceID)
	if !ok {
		return nil, fmt.Errorf("service %s: %w", in.ServiceID, client.ErrNotFound)
	}
	stf, ok := a.b.staffMember(in.StaffID)
	if !ok {
		return nil, fmt.Errorf("staff member %s: %w", in.StaffID, client.ErrNotFound)
	}
	if !stf.CanPerform(svc.ID) {
		return nil, &client.APIError{Status: http.StatusUnprocessableEntity, Message: stf.Name + " does not perform " + svc.Name}
	}

	now := a.b.now()
	apt := domain.Appointment{
		ID:           "apt-" + uuid.NewString(),
		StaffID:      stf.ID,
		Staff:        stf.Summary(),
		ServiceID:    svc.ID,
		Service:      svc.Summary(),
		CustomerID:   customerID,
		CustomerName: customerName,
		StartTime:    in.StartTime,
		EndTime:      domain.EndFor(in.StartTime, svc.DurationMinutes),
		Status:       domain.StatusScheduled,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
		BusinessID:   a.b.businessID,
		Version:      1,
	}
	list := a.b.customerAppointments(customerID)
	a.b.appointments[customerID] = append(list, apt)
	return &apt, nil
}

func (a appointmentAPI) Update(ctx context.Context, id string, patch domain.AppointmentPatch) (*domain.Appointment, error) {
	if err := a.b.simulate(ctx, "appointments.update"); err != nil {
		return nil, err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, &client.APIError{Status: http.StatusBadRequest, Message: "invalid appointment status"}
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()

	customerID, idx, ok := a.b.findAppointment(id)
	if !ok {
		return nil, fmt.Errorf("appointment %s: %w", id, client.ErrNotFound)
	}
	current := a.b.appointments[customerID][idx]
	next := current.Apply(patch, a.b.now())
	if patch.StaffID != nil && *patch.StaffID != current.StaffID {
		stf, ok := a.b.staffMember(*patch.StaffID)
		if !ok {
			return nil, fmt.Errorf("staff member %s: %w", *patch.StaffID, client.ErrNotFound)
		}
		if !stf.CanPerform(current.ServiceID) {
			return nil, &client.APIError{Status: http.StatusUnprocessableEntity, Message: "staff member does not perform this service"}
		}
		next.Staff = stf.Summary()
	}
	a.b.appointments[customerID][idx] = next
	return &next, nil
}

// customerAppointments returns the customer's list, generating it on first
// access. Callers hold b.mu.
func (b *Backend) customerAppointments(customerID string) []domain.Appointment {
	if list, ok := b.appointments[customerID]; ok {
		return list
	}
	name := "Customer"
	for _, acc := range b.users {
		if acc.user.ID == customerID {
			name = acc.user.Name()
			break
		}
	}
	list := seedAppointments(customerID, name, b.businessID, b.now(), b.services, b.staff)
	b.appointments[customerID] = list
	return list
}

// findAppointment locates id in the store. Callers hold b.mu.
func (b *Backend) findAppointment(id string) (customerID string, idx int, ok bool) {
	for cid, list := range b.appointments {
		for i := range list {
			if list[i].ID == id {
				return cid, i, true
			}
		}
	}
	return "", 0, false
}
