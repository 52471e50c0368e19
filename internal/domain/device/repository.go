package device

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for device repository operations
type Repository interface {
	Create(ctx context.Context, device *Device) error
	GetByID(ctx context.Context, deviceID uuid.UUID) (*Device, error)
	GetByDeviceID(ctx context.Context, hardwareID string) (*Device, error)
	UpdateStatus(ctx context.Context, deviceID uuid.UUID, status Status) error
	List(ctx context.Context, filter *Filter) ([]*Device, int64, error)
}

// Filter represents filtering options for listing devices
type Filter struct {
	ElderlyPersonID *uuid.UUID
	Status          *Status
	DeviceType      *string
	Page            int
	PageSize        int
}
