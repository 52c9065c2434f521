package handler

import (
	"github.com/glowbook/salon-booking/internal/core/domain"
)

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func toService(req serviceRequest, id, businessID string) domain.Service {
	return domain.Service{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		ImageURL:        req.ImageURL,
		Active:          boolOr(req.Active, true),
		BusinessID:      businessID,
	}
}

func toStaffMember(req staffRequest, id, businessID string) domain.StaffMember {
	return domain.StaffMember{
		ID:                id,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Specialties:       req.Specialties,
		ServiceIDs:        req.ServiceIDs,
		YearsOfExperience: req.YearsOfExperience,
		Active:            boolOr(req.Active, true),
		BusinessID:        businessID,
	}
}

func toCustomer(req customerRequest, id, businessID string) domain.Customer {
	return domain.Customer{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Status:     domain.CustomerStatus(req.Status),
		BusinessID: businessID,
	}
}

func toSettings(req settingsRequest, businessID string) domain.BusinessSettings {
	hours := make([]domain.OpeningHours, 0, len(req.Hours))
	for _, h := range req.Hours {
		hours = append(hours, domain.OpeningHours{Day: h.Day, Open: h.Open, Close: h.Close, Closed: h.Closed})
	}
	return domain.BusinessSettings{
		BusinessID:  businessID,
		Name:        req.Name,
		Description: req.Description,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		LogoURL:     req.LogoURL,
		Hours:       hours,
	}
}
