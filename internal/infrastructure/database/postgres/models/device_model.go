package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceModel represents the database model for paired monitoring devices.
type DeviceModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DeviceName      string    `gorm:"type:varchar(255);not null"`
	DeviceID        string    `gorm:"type:varchar(255);not null;index"`
	DeviceType      *string   `gorm:"type:varchar(100)"`
	ElderlyPersonID uuid.UUID `gorm:"type:uuid;not null;index"`
	Location        *string   `gorm:"type:varchar(255)"`
	Status          string    `gorm:"type:varchar(50);not null;default:'active'"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (DeviceModel) TableName() string {
	return "devices"
}
