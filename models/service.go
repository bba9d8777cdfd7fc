package models

import (
	"time"
)

// DesignMode controls whether and how a design add-on can be priced.
type DesignMode string

const (
	DesignModeNone   DesignMode = "none"
	DesignModeFixed  DesignMode = "fixed"
	DesignModeCustom DesignMode = "custom"
)

func (m DesignMode) Valid() bool {
	switch m {
	case DesignModeNone, DesignModeFixed, DesignModeCustom:
		return true
	}
	return false
}

// Service is a bookable offering. DesignPriceCents is set only in fixed mode;
// DesignPriceOptions are only consulted in custom mode.
type Service struct {
	ID                 uint                `gorm:"primaryKey" json:"id"`
	Name               string              `gorm:"uniqueIndex;not null" json:"name"`
	PriceCents         int                 `gorm:"not null" json:"priceCents"`
	DurationMin        *int                `json:"durationMin"`
	Active             bool                `gorm:"not null;index" json:"active"`
	DesignMode         DesignMode          `gorm:"type:varchar(10);not null" json:"designMode"`
	DesignPriceCents   *int                `json:"designPriceCents"`
	DesignPriceOptions []DesignPriceOption `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"designPriceOptions"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// DesignPriceOption is a preset design price offered by a custom-mode service.
type DesignPriceOption struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	ServiceID  uint    `gorm:"index;not null" json:"serviceId"`
	Label      *string `gorm:"size:40" json:"label"`
	PriceCents int     `gorm:"not null" json:"priceCents"`
}
