package mock

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

type account struct {
	user     domain.User
	password string
}

func seedServices(businessID string) []domain.Service {
	svc := func(id, name, desc, price string, minutes int) domain.Service {
		return domain.Service{
			ID:              id,
			Name:            name,
			Description:     desc,
			Price:           decimal.RequireFromString(price),
			DurationMinutes: minutes,
			Active:          true,
			BusinessID:      businessID,
		}
	}
	return []domain.Service{
		svc("svc-1", "Haircut", "Wash, cut and blow-dry.", "35.00", 45),
		svc("svc-2", "Hair Coloring", "Full color with toner.", "85.00", 90),
		svc("svc-3", "Manicure", "Shape, cuticle care and polish.", "25.00", 30),
		svc("svc-4", "Facial", "Cleansing facial with mask.", "60.00", 60),
		svc("svc-5", "Beard Trim", "Trim and line-up.", "15.00", 20),
	}
}

func seedStaff(businessID string) []domain.StaffMember {
	return []domain.StaffMember{
		{ID: "stf-1", Name: "Emma Clarke", Email: "emma@salon.test", Phone: "+1 555 0101",
			Specialties: []string{"Cutting", "Coloring"}, ServiceIDs: []string{"svc-1", "svc-2"},
			YearsOfExperience: 8, Active: true, BusinessID: businessID},
		{ID: "stf-2", Name: "Liam Ortega", Email: "liam@salon.test", Phone: "+1 555 0102",
			Specialties: []string{"Barbering"}, ServiceIDs: []string{"svc-1", "svc-5"},
			YearsOfExperience: 5, Active: true, BusinessID: businessID},
		{ID: "stf-3", Name: "Sofia Rossi", Email: "sofia@salon.test", Phone: "+1 555 0103",
			Specialties: []string{"Nails", "Skin care"}, ServiceIDs: []string{"svc-3", "svc-4"},
			YearsOfExperience: 11, Active: true, BusinessID: businessID},
		{ID: "stf-4", Name: "Noah Becker", Email: "noah@salon.test", Phone: "+1 555 0104",
			Specialties: []string{"Cutting"}, ServiceIDs: []string{"svc-1"},
			YearsOfExperience: 2, Active: false, BusinessID: businessID},
	}
}

// Demo accounts, one per role.
func seedUsers(businessID string) map[string]*account {
	mk := func(id, first, last, email, password string, role domain.Role) *account {
		return &account{
			user:     domain.User{ID: id, FirstName: first, LastName: last, Email: email, Role: role, BusinessID: businessID},
			password: password,
		}
	}
	users := []*account{
		mk("user-admin", "Ada", "Admin", "admin@salon.test", "admin123", domain.RoleAdmin),
		mk("user-staff", "Sam", "Staff", "staff@salon.test", "staff123", domain.RoleStaff),
		mk("user-1", "Casey", "Customer", "customer@salon.test", "customer123", domain.RoleCustomer),
	}
	out := make(map[string]*account, len(users))
	for _, u := range users {
		out[u.user.Email] = u
	}
	return out
}

// seedAppointments generates a customer's history: three upcoming bookings
// and three past ones around now.
func seedAppointments(customerID, customerName, businessID string, now time.Time, services []domain.Service, staff []domain.StaffMember) []domain.Appointment {
	plan := []struct {
		days    int
		hour    int
		service int
		staff   int
		status  domain.AppointmentStatus
	}{
		{1, 10, 0, 0, domain.StatusScheduled},
		{3, 14, 2, 2, domain.StatusScheduled},
		{7, 11, 1, 0, domain.StatusRescheduled},
		{-2, 16, 4, 1, domain.StatusCompleted},
		{-10, 9, 3, 2, domain.StatusCancelled},
		{-30, 13, 0, 1, domain.StatusNoShow},
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]domain.Appointment, 0, len(plan))
	for i, p := range plan {
		svc := services[p.service]
		stf := staff[p.staff]
		start := day.AddDate(0, 0, p.days).Add(time.Duration(p.hour) * time.Hour)
		created := start.AddDate(0, 0, -14)
		out = append(out, domain.Appointment{
			ID:           fmt.Sprintf("apt-%s-%d", customerID, i+1),
			StaffID:      stf.ID,
			Staff:        stf.Summary(),
			ServiceID:    svc.ID,
			Service:      svc.Summary(),
			CustomerID:   customerID,
			CustomerName: customerName,
			StartTime:    start,
			EndTime:      domain.EndFor(start, svc.DurationMinutes),
			Status:       p.status,
			CreatedAt:    created,
			UpdatedAt:    created,
			BusinessID:   businessID,
			Version:      1,
		})
	}
	return out
}
