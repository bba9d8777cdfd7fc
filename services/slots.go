package services

import (
	"context"
	"fmt"
	"time"

	"nailbook-backend/models"
	"nailbook-backend/utils"
)

// ShopHours is the bookable window of a shop day in local time.
type ShopHours struct {
	OpenHour  int
	CloseHour int
	StepMin   int
}

var DefaultShopHours = ShopHours{OpenHour: 11, CloseHour: 20, StepMin: 15}

type SlotQuery struct {
	Date       string `form:"date" binding:"required,ymd"`
	NailTechID *uint  `form:"nailTechId"`
	ServiceID  *uint  `form:"serviceId"`
}

type Slot struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	Taken bool      `json:"taken"`
	Past  bool      `json:"past"`
}

// SlotLabels renders the "h:mm AM/PM" grid of a shop day.
func (h ShopHours) SlotLabels() []string {
	var labels []string
	for m := h.OpenHour * 60; m < h.CloseHour*60; m += h.StepMin {
		hour, minute := m/60, m%60
		suffix := "AM"
		if hour >= 12 {
			suffix = "PM"
		}
		display := hour % 12
		if display == 0 {
			display = 12
		}
		labels = append(labels, fmt.Sprintf("%d:%02d %s", display, minute, suffix))
	}
	return labels
}

// WithHours overrides the default shop hours.
func (s *AppointmentService) WithHours(h ShopHours) *AppointmentService {
	s.hours = h
	return s
}

// Slots lays out the bookable grid for a local day. A slot is taken when the
// technician has an appointment of any status at that minute, and dropped when
// the service would run past closing.
func (s *AppointmentService) Slots(ctx context.Context, q SlotQuery) ([]Slot, error) {
	day, err := s.zone.ParseDate(q.Date)
	if err != nil {
		return nil, utils.ValidationField("date", "Invalid date")
	}
	from, to, err := s.dayWindow(q.Date)
	if err != nil {
		return nil, err
	}

	hours := s.hours
	if hours.StepMin <= 0 {
		hours = DefaultShopHours
	}
	closing, err := s.zone.ClockToUTC(day, hours.closingLabel())
	if err != nil {
		return nil, err
	}

	var duration time.Duration
	if q.ServiceID != nil {
		svc, err := s.catalog.GetService(ctx, *q.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc.DurationMin != nil {
			duration = time.Duration(*svc.DurationMin) * time.Minute
		}
	}

	taken := make(map[int64]bool)
	if q.NailTechID != nil {
		appts, err := s.appointments.ListAppointments(ctx, models.AppointmentFilter{
			From:       &from,
			To:         &to,
			NailTechID: q.NailTechID,
		})
		if err != nil {
			return nil, err
		}
		for _, a := range appts {
			taken[utils.TruncateMinute(a.ScheduledAt).Unix()] = true
		}
	}

	now := s.now()
	var slots []Slot
	for _, label := range hours.SlotLabels() {
		start, err := s.zone.ClockToUTC(day, label)
		if err != nil {
			return nil, err
		}
		if duration > 0 && start.Add(duration).After(closing) {
			continue
		}
		slots = append(slots, Slot{
			Label: label,
			Start: start,
			Taken: taken[start.Unix()],
			Past:  start.Before(now),
		})
	}
	return slots, nil
}

func (h ShopHours) closingLabel() string {
	if h.CloseHour >= 24 {
		return "11:59 PM"
	}
	suffix := "AM"
	if h.CloseHour >= 12 {
		suffix = "PM"
	}
	display := h.CloseHour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}
