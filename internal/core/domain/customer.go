package domain

import "time"

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

// Customer is a client of the business as seen from the admin portal.
type Customer struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone"`
	Status     CustomerStatus `json:"status"`
	CreatedAt  time.Time      `json:"createdAt"`
	BusinessID string         `json:"businessId"`
}
