package services

import (
	"context"
	"strings"
	"time"

	"nailbook-backend/metrics"
	"nailbook-backend/models"
	"nailbook-backend/utils"

	"go.uber.org/zap"
)

type CreateAppointmentInput struct {
	Date           time.Time `json:"date" binding:"required"`
	CustomerName   string    `json:"customerName" binding:"required,max=100"`
	PhoneNumber    string    `json:"phoneNumber" binding:"required,phone"`
	ServiceID      uint      `json:"serviceId" binding:"required"`
	NailTechID     *uint     `json:"nailTechId"`
	NailTechName   *string   `json:"nailTechName" binding:"omitempty,max=100"`
	AddDesign      bool      `json:"addDesign"`
	DesignPrice    *float64  `json:"designPrice"`
	DesignPresetID *uint     `json:"designPresetId"`
	DesignNotes    *string   `json:"designNotes"`
}

type UpdateStatusInput struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=confirmed cancelled done"`
}

// RevenueInvalidator drops cached revenue reports after a status change.
type RevenueInvalidator interface {
	Invalidate(ctx context.Context)
}

type AppointmentService struct {
	appointments AppointmentStore
	catalog      ServiceStore
	users        *UserService
	techs        *NailTechService
	reports      RevenueInvalidator
	zone         *utils.ShopZone
	hours        ShopHours
	log          *zap.Logger
	now          func() time.Time
}

func NewAppointmentService(
	appointments AppointmentStore,
	catalog ServiceStore,
	users *UserService,
	techs *NailTechService,
	reports RevenueInvalidator,
	zone *utils.ShopZone,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		catalog:      catalog,
		users:        users,
		techs:        techs,
		reports:      reports,
		zone:         zone,
		hours:        DefaultShopHours,
		log:          log.Named("appointments"),
		now:          time.Now,
	}
}

// Create books an appointment for the authenticated user and freezes the
// service pricing on it.
func (s *AppointmentService) Create(ctx context.Context, externalUserID string, input CreateAppointmentInput) (*models.Appointment, error) {
	user, err := s.users.Resolve(ctx, externalUserID)
	if err != nil {
		return nil, err
	}

	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		return nil, utils.ValidationField("customerName", "Customer name is required.")
	}
	if input.Date.IsZero() {
		return nil, utils.ValidationField("date", "Invalid date")
	}

	svc, err := s.catalog.GetService(ctx, input.ServiceID)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, utils.ValidationField("serviceId", "Invalid service.")
		}
		return nil, err
	}
	if !svc.Active {
		return nil, utils.ValidationField("serviceId", "Invalid service.")
	}

	quote, err := ResolveDesign(svc, DesignRequest{
		WantsDesign: input.AddDesign,
		PriceMajor:  input.DesignPrice,
		PresetID:    input.DesignPresetID,
		Notes:       input.DesignNotes,
	})
	if err != nil {
		return nil, err
	}

	tech, err := s.resolveTech(ctx, input.NailTechID, input.NailTechName)
	if err != nil {
		return nil, err
	}

	at := utils.TruncateMinute(input.Date)
	appt := &models.Appointment{
		ScheduledAt:  at,
		UserID:       user.ID,
		Status:       models.StatusConfirmed,
		CustomerName: customer,
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		ServiceID:    svc.ID,
		ServiceName:  svc.Name,
		PriceCents:   svc.PriceCents,
		HasDesign:    quote.HasDesign,
	}
	if quote.HasDesign {
		appt.DesignPriceCents = quote.PriceCents
		appt.DesignNotes = quote.Notes
	}

	if tech != nil {
		appt.NailTechID = &tech.ID
		if err := s.checkConflict(ctx, tech.ID, at); err != nil {
			return nil, err
		}
	}

	if err := s.appointments.CreateAppointment(ctx, appt); err != nil {
		if utils.IsKind(err, utils.KindConflict) {
			metrics.RecordConflict()
		}
		return nil, err
	}
	appt.NailTech = tech
	appt.ServiceDurationMin = svc.DurationMin

	metrics.RecordBooking()
	s.log.Info("appointment booked",
		zap.Uint("appointment_id", appt.ID),
		zap.Time("scheduled_at", appt.ScheduledAt),
		zap.Uint("service_id", svc.ID),
		zap.Bool("has_design", appt.HasDesign))
	return appt, nil
}

func (s *AppointmentService) resolveTech(ctx context.Context, id *uint, name *string) (*models.NailTech, error) {
	if id != nil && *id != 0 {
		tech, err := s.techs.Get(ctx, *id)
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, utils.ValidationField("nailTechId", "Invalid nail tech.")
		}
		return tech, err
	}
	if name != nil && strings.TrimSpace(*name) != "" {
		return s.techs.Resolve(ctx, *name)
	}
	return nil, nil
}

// checkConflict fails when the technician already has an appointment in the
// same minute, whatever its status. The unique index still arbitrates races.
func (s *AppointmentService) checkConflict(ctx context.Context, techID uint, at time.Time) error {
	existing, err := s.appointments.FindTechAppointmentAt(ctx, techID, utils.TruncateMinute(at))
	if err != nil {
		return err
	}
	if existing != nil {
		metrics.RecordConflict()
		return utils.Conflict("This nail tech already has an appointment at that time.")
	}
	return nil
}

// SetStatus overwrites the status. Moving to done stamps the finish time and
// the snapshot total; any other status clears both.
func (s *AppointmentService) SetStatus(ctx context.Context, id uint, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, utils.ValidationField("status", "Invalid status")
	}

	appt, err := s.appointments.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := appt.Status

	appt.Status = status
	if status == models.StatusDone {
		finished := s.now().UTC()
		total := AppointmentTotalCents(SnapshotOf(appt))
		appt.FinishedAt = &finished
		appt.TotalCents = &total
	} else {
		appt.FinishedAt = nil
		appt.TotalCents = nil
	}

	if err := s.appointments.UpdateAppointmentStatus(ctx, appt); err != nil {
		return nil, err
	}

	if previous == models.StatusDone || status == models.StatusDone {
		s.reports.Invalidate(ctx)
	}
	metrics.RecordStatusChange(string(status))
	s.log.Info("appointment status changed",
		zap.Uint("appointment_id", appt.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)))
	return appt, nil
}

// ListForDay returns every appointment of a local calendar day, or all of them
// when ymd is empty.
func (s *AppointmentService) ListForDay(ctx context.Context, ymd string) ([]models.Appointment, error) {
	var filter models.AppointmentFilter
	if ymd != "" {
		from, to, err := s.dayWindow(ymd)
		if err != nil {
			return nil, err
		}
		filter.From, filter.To = &from, &to
	}

	appts, err := s.appointments.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range appts {
		if appts[i].Service != nil {
			appts[i].ServiceDurationMin = appts[i].Service.DurationMin
		}
	}
	return appts, nil
}

func (s *AppointmentService) dayWindow(ymd string) (time.Time, time.Time, error) {
	from, err := s.zone.DayStartUTC(ymd)
	if err != nil {
		return time.Time{}, time.Time{}, utils.ValidationField("date", "Invalid date")
	}
	to, err := s.zone.NextDayStartUTC(ymd)
	if err != nil {
		return time.Time{}, time.Time{}, utils.ValidationField("date", "Invalid date")
	}
	return from, to, nil
}
