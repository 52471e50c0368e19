package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainDevice "eldercare-monitor/internal/domain/device"
	domainPairing "eldercare-monitor/internal/domain/pairing"
	"eldercare-monitor/internal/infrastructure/database/postgres/models"
)

// PairingRepository implements the pairing.Repository interface.
type PairingRepository struct {
	db *DB
}

func NewPairingRepository(db *DB) domainPairing.Repository {
	return &PairingRepository{db: db}
}

func (r *PairingRepository) Create(ctx context.Context, request *domainPairing.Request) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}

	dbModel := toPairingModel(request)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create pairing request: %w", err)
	}

	request.ID = dbModel.ID
	request.CreatedAt = dbModel.CreatedAt
	request.UpdatedAt = dbModel.UpdatedAt

	return nil
}

// GetByCode returns the most recent request carrying the code. Codes are
// only unique among live requests; historic rows may share one.
func (r *PairingRepository) GetByCode(ctx context.Context, pairingCode string) (*domainPairing.Request, error) {
	var dbModel models.PairingRequestModel
	err := r.db.DB.WithContext(ctx).
		Where("pairing_code = ?", pairingCode).
		Order("created_at DESC").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainPairing.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pairing request: %w", err)
	}

	return toPairingEntity(&dbModel), nil
}

func (r *PairingRepository) GetByID(ctx context.Context, requestID uuid.UUID) (*domainPairing.Request, error) {
	var dbModel models.PairingRequestModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", requestID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainPairing.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pairing request: %w", err)
	}

	return toPairingEntity(&dbModel), nil
}

func (r *PairingRepository) MarkExpired(ctx context.Context, requestID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.PairingRequestModel{}).
		Where("id = ? AND status = ?", requestID, string(domainPairing.StatusPending)).
		Updates(map[string]interface{}{
			"status":     string(domainPairing.StatusExpired),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to expire pairing request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainPairing.ErrNotPending
	}

	return nil
}

// Approve binds the device and finalizes the request in one transaction.
// The status update is conditional on the row still being pending, so a
// concurrent verify cannot pair the same code twice.
func (r *PairingRepository) Approve(ctx context.Context, request *domainPairing.Request, dev *domainDevice.Device, entries []*domainPairing.AssociationLogEntry) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PairingRequestModel{}).
			Where("id = ? AND status = ?", request.ID, string(domainPairing.StatusPending)).
			Updates(map[string]interface{}{
				"status":      string(domainPairing.StatusPaired),
				"approved_by": request.ApprovedBy,
				"paired_at":   request.PairedAt,
				"updated_at":  request.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update pairing request: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainPairing.ErrNotPending
		}

		if dev.ID == uuid.Nil {
			dev.ID = uuid.New()
		}
		deviceModel := toDeviceModel(dev)
		if err := tx.Create(deviceModel).Error; err != nil {
			return fmt.Errorf("failed to create device: %w", err)
		}
		dev.ID = deviceModel.ID
		dev.CreatedAt = deviceModel.CreatedAt
		dev.UpdatedAt = deviceModel.UpdatedAt

		for _, entry := range entries {
			if entry.ID == uuid.Nil {
				entry.ID = uuid.New()
			}
			if err := tx.Create(toAssociationLogModel(entry)).Error; err != nil {
				return fmt.Errorf("failed to append association log: %w", err)
			}
		}

		return nil
	})
}

func (r *PairingRepository) Reject(ctx context.Context, request *domainPairing.Request, entry *domainPairing.AssociationLogEntry) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PairingRequestModel{}).
			Where("id = ? AND status = ?", request.ID, string(domainPairing.StatusPending)).
			Updates(map[string]interface{}{
				"status":      string(domainPairing.StatusRejected),
				"approved_by": request.ApprovedBy,
				"updated_at":  request.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update pairing request: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainPairing.ErrNotPending
		}

		if entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		if err := tx.Create(toAssociationLogModel(entry)).Error; err != nil {
			return fmt.Errorf("failed to append association log: %w", err)
		}

		return nil
	})
}

func (r *PairingRepository) AppendLog(ctx context.Context, entry *domainPairing.AssociationLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	dbModel := toAssociationLogModel(entry)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to append association log: %w", err)
	}

	entry.CreatedAt = dbModel.CreatedAt
	return nil
}

func (r *PairingRepository) ListLogs(ctx context.Context, requestID uuid.UUID) ([]*domainPairing.AssociationLogEntry, error) {
	var dbModels []models.AssociationLogModel
	err := r.db.DB.WithContext(ctx).
		Where("pairing_request_id = ?", requestID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list association logs: %w", err)
	}

	entries := make([]*domainPairing.AssociationLogEntry, len(dbModels))
	for i := range dbModels {
		entries[i] = toAssociationLogEntity(&dbModels[i])
	}
	return entries, nil
}

func toPairingModel(r *domainPairing.Request) *models.PairingRequestModel {
	return &models.PairingRequestModel{
		ID:              r.ID,
		DeviceID:        r.DeviceID,
		DeviceType:      r.DeviceType,
		PairingCode:     r.PairingCode,
		ElderlyPersonID: r.ElderlyPersonID,
		RequestedBy:     r.RequestedBy,
		ApprovedBy:      r.ApprovedBy,
		DeviceMetadata:  models.JSONMap(r.DeviceMetadata),
		NetworkInfo:     models.JSONMap(r.NetworkInfo),
		Status:          string(r.Status),
		ExpiresAt:       r.ExpiresAt,
		PairedAt:        r.PairedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toPairingEntity(m *models.PairingRequestModel) *domainPairing.Request {
	return &domainPairing.Request{
		ID:              m.ID,
		DeviceID:        m.DeviceID,
		DeviceType:      m.DeviceType,
		PairingCode:     m.PairingCode,
		ElderlyPersonID: m.ElderlyPersonID,
		RequestedBy:     m.RequestedBy,
		ApprovedBy:      m.ApprovedBy,
		DeviceMetadata:  map[string]interface{}(m.DeviceMetadata),
		NetworkInfo:     map[string]interface{}(m.NetworkInfo),
		Status:          domainPairing.Status(m.Status),
		ExpiresAt:       m.ExpiresAt,
		PairedAt:        m.PairedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toAssociationLogModel(e *domainPairing.AssociationLogEntry) *models.AssociationLogModel {
	return &models.AssociationLogModel{
		ID:               e.ID,
		PairingRequestID: e.PairingRequestID,
		DeviceID:         e.DeviceID,
		EventType:        string(e.EventType),
		UserID:           e.UserID,
		Details:          models.JSONMap(e.Details),
		CreatedAt:        e.CreatedAt,
	}
}

func toAssociationLogEntity(m *models.AssociationLogModel) *domainPairing.AssociationLogEntry {
	return &domainPairing.AssociationLogEntry{
		ID:               m.ID,
		PairingRequestID: m.PairingRequestID,
		DeviceID:         m.DeviceID,
		EventType:        domainPairing.EventType(m.EventType),
		UserID:           m.UserID,
		Details:          map[string]interface{}(m.Details),
		CreatedAt:        m.CreatedAt,
	}
}
