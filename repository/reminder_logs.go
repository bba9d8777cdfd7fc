package repository

import (
	"context"

	"nailbook-backend/models"
)

func (s *Store) HasSentReminder(ctx context.Context, appointmentID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ReminderLog{}).
		Where("appointment_id = ? AND status = ?", appointmentID, models.ReminderSent).
		Count(&count).Error
	return count > 0, translate(err, "", "")
}

func (s *Store) CreateReminderLog(ctx context.Context, entry *models.ReminderLog) error {
	return translate(s.db.WithContext(ctx).Create(entry).Error, "", "")
}

func (s *Store) ListReminderLogs(ctx context.Context, appointmentID *uint, limit int) ([]models.ReminderLog, error) {
	q := s.db.WithContext(ctx).Order("sent_at DESC").Order("id DESC")
	if appointmentID != nil {
		q = q.Where("appointment_id = ?", *appointmentID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var logs []models.ReminderLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, translate(err, "", "")
	}
	return logs, nil
}
