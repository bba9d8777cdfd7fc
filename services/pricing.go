package services

import (
	"math"
	"strings"
	"unicode/utf8"

	"nailbook-backend/models"
	"nailbook-backend/utils"
)

const (
	MaxDesignNotesLength = 200
	maxDesignPriceMajor  = 100000
)

// DesignRequest is the client's design add-on choice for a booking.
type DesignRequest struct {
	WantsDesign bool
	PriceMajor  *float64 // manual price in dollars, custom mode only
	PresetID    *uint
	Notes       *string
}

// DesignQuote is the resolved add-on, ready to be frozen on the appointment.
type DesignQuote struct {
	HasDesign  bool
	PriceCents *int
	Notes      *string
}

// ResolveDesign decides whether the add-on is allowed for svc and what it costs.
// Client input never overrides a fixed price.
func ResolveDesign(svc *models.Service, req DesignRequest) (DesignQuote, error) {
	if !req.WantsDesign {
		return DesignQuote{}, nil
	}

	notes := SanitizeDesignNotes(req.Notes)

	switch svc.DesignMode {
	case models.DesignModeFixed:
		if svc.DesignPriceCents == nil || *svc.DesignPriceCents <= 0 {
			return DesignQuote{}, utils.Configuration("Design price is not configured for this service.")
		}
		price := *svc.DesignPriceCents
		return DesignQuote{HasDesign: true, PriceCents: &price, Notes: notes}, nil

	case models.DesignModeCustom:
		if req.PresetID != nil {
			for _, opt := range svc.DesignPriceOptions {
				if opt.ID == *req.PresetID && opt.PriceCents > 0 {
					price := opt.PriceCents
					return DesignQuote{HasDesign: true, PriceCents: &price, Notes: notes}, nil
				}
			}
		}
		if req.PriceMajor != nil {
			if *req.PriceMajor > maxDesignPriceMajor {
				return DesignQuote{}, utils.ValidationField("designPrice", "Design price must not exceed 100000.")
			}
			if price, ok := DollarsToCents(*req.PriceMajor); ok {
				return DesignQuote{HasDesign: true, PriceCents: &price, Notes: notes}, nil
			}
		}
		return DesignQuote{}, utils.ValidationField("designPrice", "Design price is required and must be > 0.")

	default:
		return DesignQuote{}, utils.Validation("Design is not available for this service.")
	}
}

// DollarsToCents converts a positive, finite major-unit amount to cents,
// rounding to the nearest cent.
func DollarsToCents(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	cents := int(math.Round(v * 100))
	if cents <= 0 {
		return 0, false
	}
	return cents, true
}

// SanitizeDesignNotes trims notes, drops empty ones and caps them at 200 characters.
func SanitizeDesignNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	s := strings.TrimSpace(*notes)
	if s == "" {
		return nil
	}
	if utf8.RuneCountInString(s) > MaxDesignNotesLength {
		s = string([]rune(s)[:MaxDesignNotesLength])
	}
	return &s
}

// PriceSnapshot is the pricing frozen on an appointment at booking time.
type PriceSnapshot struct {
	PriceCents       int
	HasDesign        bool
	DesignPriceCents *int
}

func SnapshotOf(a *models.Appointment) PriceSnapshot {
	return PriceSnapshot{
		PriceCents:       a.PriceCents,
		HasDesign:        a.HasDesign,
		DesignPriceCents: a.DesignPriceCents,
	}
}

// AppointmentTotalCents is the only place an appointment total is computed;
// status transitions and revenue reports both go through it.
func AppointmentTotalCents(s PriceSnapshot) int {
	total := s.PriceCents
	if s.HasDesign && s.DesignPriceCents != nil {
		total += *s.DesignPriceCents
	}
	return total
}
