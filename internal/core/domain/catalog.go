package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Service is a bookable offering of the business.
type Service struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	Active          bool            `json:"active"`
	BusinessID      string          `json:"businessId"`
}

// Summary returns the snapshot embedded in appointments.
func (s Service) Summary() ServiceSummary {
	return ServiceSummary{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
	}
}

// StaffMember is a person who performs services.
type StaffMember struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Specialties       []string `json:"specialties"`
	ServiceIDs        []string `json:"services"`
	YearsOfExperience int      `json:"yearsOfExperience"`
	Active            bool     `json:"isActive"`
	BusinessID        string   `json:"businessId"`
}

// CanPerform reports whether the staff member offers serviceID.
func (m StaffMember) CanPerform(serviceID string) bool {
	return slices.Contains(m.ServiceIDs, serviceID)
}

// Summary returns the snapshot embedded in appointments.
func (m StaffMember) Summary() StaffSummary {
	return StaffSummary{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Specialties: slices.Clone(m.Specialties),
	}
}
