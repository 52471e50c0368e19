package device

import (
	"time"

	"github.com/google/uuid"
)

// Device represents a monitoring device bound to an elderly person
// (radar sensor, bed mat, wearable, door contact).
type Device struct {
	ID              uuid.UUID
	DeviceName      string
	DeviceID        string
	DeviceType      *string
	ElderlyPersonID uuid.UUID
	Location        *string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Status represents the operational state of a device.
type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusMaintenance Status = "maintenance"
)
