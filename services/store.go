package services

import (
	"context"
	"time"

	"nailbook-backend/models"
)

// Stores return *utils.AppError values: NotFound for missing rows and
// Conflict for uniqueness or foreign-key violations.

type UserStore interface {
	FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error)
	// UpsertUser inserts u, leaving an existing row with the same ExternalID untouched.
	UpsertUser(ctx context.Context, u *models.User) error
}

type ServiceStore interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	// UpdateService saves svc. When replaceOptions is set its preset options
	// replace the stored ones in the same transaction.
	UpdateService(ctx context.Context, svc *models.Service, replaceOptions bool) error
	CountAppointmentsForService(ctx context.Context, serviceID uint) (int64, error)
	DeleteService(ctx context.Context, id uint) error
}

type NailTechStore interface {
	ListNailTechs(ctx context.Context) ([]models.NailTech, error)
	GetNailTech(ctx context.Context, id uint) (*models.NailTech, error)
	FindNailTechByName(ctx context.Context, name string) (*models.NailTech, error)
	CreateNailTech(ctx context.Context, tech *models.NailTech) error
}

type AppointmentStore interface {
	// FindTechAppointmentAt returns the appointment occupying the technician's
	// minute, or nil when the slot is free.
	FindTechAppointmentAt(ctx context.Context, nailTechID uint, at time.Time) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	// UpdateAppointmentStatus writes Status, FinishedAt and TotalCents, nulls included.
	UpdateAppointmentStatus(ctx context.Context, a *models.Appointment) error
	ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
}

type ReminderStore interface {
	ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	HasSentReminder(ctx context.Context, appointmentID uint) (bool, error)
	CreateReminderLog(ctx context.Context, entry *models.ReminderLog) error
	// ListReminderLogs returns the newest logs first, optionally for one appointment.
	ListReminderLogs(ctx context.Context, appointmentID *uint, limit int) ([]models.ReminderLog, error)
}
