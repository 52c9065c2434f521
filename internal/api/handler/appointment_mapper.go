package handler

import (
	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/core/ports"
)

// --- Request → Service input ---

func toCreateAppointmentInput(req createAppointmentRequest, actor domain.Actor, businessID, idempotencyKey string) ports.CreateAppointmentInput {
	in := ports.CreateAppointmentInput{
		BusinessID:     businessID,
		StaffID:        req.StaffID,
		ServiceID:      req.ServiceID,
		StartTime:      req.StartTime.UTC(),
		Notes:          req.Notes,
		IdempotencyKey: idempotencyKey,
	}
	if actor.Role.IsBackOffice() {
		in.CustomerID = req.CustomerID
		in.CustomerName = req.CustomerName
	} else {
		in.CustomerID = actor.UserID
	}
	return in
}

func toAppointmentPatch(req updateAppointmentRequest) domain.AppointmentPatch {
	var p domain.AppointmentPatch
	if req.StartTime != nil {
		start := req.StartTime.UTC()
		p.StartTime = &start
	}
	if req.Status != nil {
		status := domain.AppointmentStatus(*req.Status)
		p.Status = &status
	}
	p.Notes = req.Notes
	p.StaffID = req.StaffID
	return p
}
