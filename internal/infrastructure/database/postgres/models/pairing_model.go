package models

import (
	"time"

	"github.com/google/uuid"
)

// PairingRequestModel represents the database model for device pairing requests.
type PairingRequestModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DeviceID        string     `gorm:"type:varchar(255);not null;index"`
	DeviceType      *string    `gorm:"type:varchar(100)"`
	PairingCode     string     `gorm:"type:varchar(6);not null;index"`
	ElderlyPersonID uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestedBy     uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	DeviceMetadata  JSONMap    `gorm:"type:jsonb"`
	NetworkInfo     JSONMap    `gorm:"type:jsonb"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ExpiresAt       time.Time  `gorm:"not null"`
	PairedAt        *time.Time `gorm:"type:timestamp"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

func (PairingRequestModel) TableName() string {
	return "device_pairing_requests"
}

// AssociationLogModel represents the append-only audit log of pairing
// state transitions. Rows are never updated or deleted.
type AssociationLogModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PairingRequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	DeviceID         *string   `gorm:"type:varchar(255)"`
	EventType        string    `gorm:"type:varchar(50);not null"`
	UserID           uuid.UUID `gorm:"type:uuid;not null"`
	Details          JSONMap   `gorm:"type:jsonb"`
	CreatedAt        time.Time `gorm:"not null"`
}

func (AssociationLogModel) TableName() string {
	return "device_association_logs"
}
