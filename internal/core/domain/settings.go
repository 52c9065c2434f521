package domain

import "time"

// OpeningHours describes one weekday.
type OpeningHours struct {
	Day    string `json:"day"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

// BusinessSettings is the singleton profile of a business.
type BusinessSettings struct {
	BusinessID  string         `json:"businessId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Phone       string         `json:"phone"`
	Email       string         `json:"email"`
	Address     string         `json:"address"`
	LogoURL     string         `json:"logoUrl,omitempty"`
	Hours       []OpeningHours `json:"hours"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// DefaultSettings returns the profile used before an admin saves one.
func DefaultSettings(businessID string) BusinessSettings {
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	hours := make([]OpeningHours, 0, len(days))
	for _, d := range days {
		if d == "sunday" {
			hours = append(hours, OpeningHours{Day: d, Closed: true})
			continue
		}
		hours = append(hours, OpeningHours{Day: d, Open: "09:00", Close: "18:00"})
	}
	return BusinessSettings{BusinessID: businessID, Name: "My Salon", Hours: hours}
}
