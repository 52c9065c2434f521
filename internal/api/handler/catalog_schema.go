package handler

import "github.com/shopspring/decimal"

type serviceRequest struct {
	Name            string          `json:"name"        validate:"required"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration"    validate:"required,gt=0"`
	ImageURL        string          `json:"imageUrl"`
	Active          *bool           `json:"active"`
}

type staffRequest struct {
	Name              string   `json:"name"              validate:"required"`
	Email             string   `json:"email"             validate:"omitempty,email"`
	Phone             string   `json:"phone"`
	Specialties       []string `json:"specialties"`
	ServiceIDs        []string `json:"services"`
	YearsOfExperience int      `json:"yearsOfExperience" validate:"gte=0"`
	Active            *bool    `json:"isActive"`
}

type customerRequest struct {
	Name   string `json:"name"   validate:"required"`
	Email  string `json:"email"  validate:"required,email"`
	Phone  string `json:"phone"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type openingHoursRequest struct {
	Day    string `json:"day"    validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Open   string `json:"open"   validate:"omitempty,datetime=15:04"`
	Close  string `json:"close"  validate:"omitempty,datetime=15:04"`
	Closed bool   `json:"closed"`
}

type settingsRequest struct {
	Name        string                `json:"name"        validate:"required"`
	Description string                `json:"description"`
	Phone       string                `json:"phone"`
	Email       string                `json:"email"       validate:"omitempty,email"`
	Address     string                `json:"address"`
	LogoURL     string                `json:"logoUrl"`
	Hours       []openingHoursRequest `json:"hours"       validate:"dive"`
}
