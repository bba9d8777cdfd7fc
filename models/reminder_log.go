// models/reminder_log.go
package models

import (
	"time"
)

const (
	ReminderSent   = "sent"
	ReminderFailed = "failed"
)

type ReminderLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AppointmentID uint      `gorm:"index;not null" json:"appointmentId"`
	Phone         string    `gorm:"type:varchar(32)" json:"phone"`
	Message       string    `gorm:"type:text" json:"message"`
	Status        string    `gorm:"type:varchar(20)" json:"status"`
	ErrorMessage  string    `gorm:"type:text" json:"errorMessage"`
	Channel       string    `gorm:"type:varchar(20)" json:"channel"` // sms
	SentAt        time.Time `json:"sentAt"`
}
