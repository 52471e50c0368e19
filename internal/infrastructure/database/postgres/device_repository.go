package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainDevice "eldercare-monitor/internal/domain/device"
	"eldercare-monitor/internal/infrastructure/database/postgres/models"
)

// DeviceRepository implements the device.Repository interface.
type DeviceRepository struct {
	db *DB
}

func NewDeviceRepository(db *DB) domainDevice.Repository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) Create(ctx context.Context, d *domainDevice.Device) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()

	dbModel := toDeviceModel(d)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return domainDevice.ErrDeviceAlreadyExists
		}
		return fmt.Errorf("failed to create device: %w", err)
	}

	d.ID = dbModel.ID
	return nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, deviceID uuid.UUID) (*domainDevice.Device, error) {
	var dbModel models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", deviceID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDevice.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return toDeviceEntity(&dbModel), nil
}

func (r *DeviceRepository) GetByDeviceID(ctx context.Context, hardwareID string) (*domainDevice.Device, error) {
	var dbModel models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("device_id = ?", hardwareID).
		Order("created_at DESC").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDevice.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return toDeviceEntity(&dbModel), nil
}

func (r *DeviceRepository) UpdateStatus(ctx context.Context, deviceID uuid.UUID, status domainDevice.Status) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.DeviceModel{}).
		Where("id = ?", deviceID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update device status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainDevice.ErrDeviceNotFound
	}

	return nil
}

func (r *DeviceRepository) List(ctx context.Context, filter *domainDevice.Filter) ([]*domainDevice.Device, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.DeviceModel{})

	if filter.ElderlyPersonID != nil {
		query = query.Where("elderly_person_id = ?", *filter.ElderlyPersonID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.DeviceType != nil {
		query = query.Where("device_type = ?", *filter.DeviceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count devices: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	var dbModels []models.DeviceModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list devices: %w", err)
	}

	devices := make([]*domainDevice.Device, len(dbModels))
	for i := range dbModels {
		devices[i] = toDeviceEntity(&dbModels[i])
	}
	return devices, total, nil
}

func toDeviceModel(d *domainDevice.Device) *models.DeviceModel {
	return &models.DeviceModel{
		ID:              d.ID,
		DeviceName:      d.DeviceName,
		DeviceID:        d.DeviceID,
		DeviceType:      d.DeviceType,
		ElderlyPersonID: d.ElderlyPersonID,
		Location:        d.Location,
		Status:          string(d.Status),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toDeviceEntity(m *models.DeviceModel) *domainDevice.Device {
	return &domainDevice.Device{
		ID:              m.ID,
		DeviceName:      m.DeviceName,
		DeviceID:        m.DeviceID,
		DeviceType:      m.DeviceType,
		ElderlyPersonID: m.ElderlyPersonID,
		Location:        m.Location,
		Status:          domainDevice.Status(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
