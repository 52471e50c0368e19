package device

import (
	"time"

	"github.com/google/uuid"

	domainDevice "eldercare-monitor/internal/domain/device"
)

type DeviceFilterRequest struct {
	ElderlyPersonID *uuid.UUID           `form:"elderly_person_id"`
	Status          *domainDevice.Status `form:"status" validate:"omitempty,oneof=active inactive maintenance"`
	DeviceType      *string              `form:"device_type" validate:"omitempty,max=100"`
	Page            int                  `form:"page" validate:"omitempty,min=1"`
	PageSize        int                  `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type DeviceResponse struct {
	ID              uuid.UUID           `json:"id"`
	DeviceName      string              `json:"device_name"`
	DeviceID        string              `json:"device_id"`
	DeviceType      *string             `json:"device_type"`
	ElderlyPersonID uuid.UUID           `json:"elderly_person_id"`
	Location        *string             `json:"location"`
	Status          domainDevice.Status `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type DeviceListResponse struct {
	Devices    []DeviceResponse `json:"devices"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

func ToDeviceResponse(d *domainDevice.Device) *DeviceResponse {
	if d == nil {
		return nil
	}
	return &DeviceResponse{
		ID:              d.ID,
		DeviceName:      d.DeviceName,
		DeviceID:        d.DeviceID,
		DeviceType:      d.DeviceType,
		ElderlyPersonID: d.ElderlyPersonID,
		Location:        d.Location,
		Status:          d.Status,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func ToDomainFilter(f *DeviceFilterRequest) *domainDevice.Filter {
	return &domainDevice.Filter{
		ElderlyPersonID: f.ElderlyPersonID,
		Status:          f.Status,
		DeviceType:      f.DeviceType,
		Page:            f.Page,
		PageSize:        f.PageSize,
	}
}
