package repository

import (
	"context"
	"errors"
	"time"

	"nailbook-backend/models"

	"gorm.io/gorm"
)

const slotTakenMessage = "This nail tech is already booked at that time."

func (s *Store) FindTechAppointmentAt(ctx context.Context, nailTechID uint, at time.Time) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.WithContext(ctx).
		Where("nail_tech_id = ? AND scheduled_at = ?", nailTechID, at).
		First(&appt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "", "")
	}
	return &appt, nil
}

// CreateAppointment inserts a. A concurrent booking of the same technician
// minute loses on the unique index and comes back as a conflict.
func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	return translate(s.db.WithContext(ctx).Omit("NailTech", "Service").Create(a).Error, "", slotTakenMessage)
}

func (s *Store) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.WithContext(ctx).Preload("NailTech").First(&appt, id).Error; err != nil {
		return nil, translate(err, "Appointment not found", "")
	}
	return &appt, nil
}

func (s *Store) UpdateAppointmentStatus(ctx context.Context, a *models.Appointment) error {
	res := s.db.WithContext(ctx).Model(a).
		Select("status", "finished_at", "total_cents", "updated_at").
		Updates(a)
	if res.Error != nil {
		return translate(res.Error, "", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Appointment not found", "")
	}
	return nil
}

func (s *Store) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	q := s.db.WithContext(ctx).Preload("NailTech").Preload("Service")
	if filter.From != nil {
		q = q.Where("scheduled_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("scheduled_at < ?", *filter.To)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}
	if filter.NailTechID != nil {
		q = q.Where("nail_tech_id = ?", *filter.NailTechID)
	}

	var appts []models.Appointment
	if err := q.Order("scheduled_at ASC").Order("id ASC").Find(&appts).Error; err != nil {
		return nil, translate(err, "", "")
	}
	return appts, nil
}
