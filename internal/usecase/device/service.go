package device

import (
	"context"

	"github.com/google/uuid"

	domainDevice "eldercare-monitor/internal/domain/device"
	appErrors "eldercare-monitor/pkg/errors"
	"eldercare-monitor/pkg/utils"
)

// Service implements device read use cases. Devices are created by the
// pairing coordinator, never through this service.
type Service struct {
	deviceRepo domainDevice.Repository
}

func NewService(deviceRepo domainDevice.Repository) *Service {
	return &Service{deviceRepo: deviceRepo}
}

func (s *Service) GetDevice(ctx context.Context, deviceID uuid.UUID) (*DeviceResponse, error) {
	device, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	return ToDeviceResponse(device), nil
}

func (s *Service) ListDevices(ctx context.Context, filter *DeviceFilterRequest) (*DeviceListResponse, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	devices, total, err := s.deviceRepo.List(ctx, ToDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	deviceResponses := make([]DeviceResponse, len(devices))
	for i, device := range devices {
		deviceResponses[i] = *ToDeviceResponse(device)
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return &DeviceListResponse{
		Devices:    deviceResponses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}
