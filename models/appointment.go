package models

import (
	"time"
)

type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusDone      AppointmentStatus = "done"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusDone:
		return true
	}
	return false
}

// Appointment carries a frozen copy of the service pricing taken at booking
// time. FinishedAt and TotalCents are set only while Status is done.
//
// ScheduledAt is stored truncated to the minute; the unique index on
// (nail_tech_id, scheduled_at) rejects double bookings of a technician.
type Appointment struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	ScheduledAt time.Time         `gorm:"not null;index;uniqueIndex:idx_tech_slot,priority:2" json:"date"`
	UserID      uint              `gorm:"index;not null" json:"userId"`
	Status      AppointmentStatus `gorm:"type:varchar(16);not null;index" json:"status"`

	CustomerName string `gorm:"not null" json:"customerName"`
	PhoneNumber  string `gorm:"not null" json:"phoneNumber"`

	NailTechID *uint     `gorm:"uniqueIndex:idx_tech_slot,priority:1" json:"nailTechId"`
	NailTech   *NailTech `gorm:"foreignKey:NailTechID" json:"nailTech"`

	ServiceID   uint     `gorm:"index;not null" json:"serviceId"`
	Service     *Service `gorm:"foreignKey:ServiceID" json:"-"`
	ServiceName string   `gorm:"not null" json:"serviceName"`
	PriceCents  int      `gorm:"not null" json:"priceCents"`

	HasDesign        bool    `gorm:"not null" json:"hasDesign"`
	DesignPriceCents *int    `json:"designPriceCents"`
	DesignNotes      *string `gorm:"size:200" json:"designNotes"`

	// ServiceDurationMin is filled from the live service on listings.
	ServiceDurationMin *int `gorm:"-" json:"serviceDurationMin,omitempty"`

	FinishedAt *time.Time `json:"finishedAt"`
	TotalCents *int       `json:"totalCents"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentFilter narrows appointment listings. From is inclusive, To is
// exclusive; nil bounds are open.
type AppointmentFilter struct {
	From       *time.Time
	To         *time.Time
	Statuses   []AppointmentStatus
	NailTechID *uint
}
