package pairing

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainDevice "eldercare-monitor/internal/domain/device"
	domainPairing "eldercare-monitor/internal/domain/pairing"
	"eldercare-monitor/internal/logger"
	appErrors "eldercare-monitor/pkg/errors"
	"eldercare-monitor/pkg/utils"
)

// Service implements the pairing coordinator use cases.
type Service struct {
	pairingRepo domainPairing.Repository
	notifier    domainPairing.Notifier
	codeTTL     time.Duration

	now      func() time.Time
	mintCode func() (string, error)
}

// NewService creates a new pairing service. notifier may be nil when no
// push channel is configured; transitions are then only observable by
// polling GetStatus.
func NewService(pairingRepo domainPairing.Repository, notifier domainPairing.Notifier, codeTTL time.Duration) *Service {
	if codeTTL <= 0 {
		codeTTL = 15 * time.Minute
	}
	return &Service{
		pairingRepo: pairingRepo,
		notifier:    notifier,
		codeTTL:     codeTTL,
		now:         time.Now,
		mintCode:    mintPairingCode,
	}
}

// mintPairingCode draws a uniform 6-digit code from [100000, 999999].
// Codes are not checked for collisions against other live requests; the
// 900000-value keyspace and short validity window keep the odds low, and a
// partial unique index on active codes turns the rare collision into an
// insert failure the caller can retry.
func mintPairingCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to draw pairing code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (s *Service) CreatePairing(ctx context.Context, req *CreatePairingRequest, requestedBy uuid.UUID) (*CreatePairingResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	code, err := s.mintCode()
	if err != nil {
		return nil, err
	}

	now := s.now()
	request := &domainPairing.Request{
		DeviceID:        req.DeviceID,
		DeviceType:      req.DeviceType,
		PairingCode:     code,
		ElderlyPersonID: req.ElderlyPersonID,
		RequestedBy:     requestedBy,
		DeviceMetadata:  req.DeviceMetadata,
		NetworkInfo:     req.NetworkInfo,
		Status:          domainPairing.StatusPending,
		ExpiresAt:       now.Add(s.codeTTL),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.pairingRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	entry := &domainPairing.AssociationLogEntry{
		PairingRequestID: request.ID,
		EventType:        domainPairing.EventPairingStarted,
		UserID:           requestedBy,
		Details: map[string]interface{}{
			"device_id":   req.DeviceID,
			"device_type": req.DeviceType,
		},
	}
	if err := s.pairingRepo.AppendLog(ctx, entry); err != nil {
		logger.Warn("Failed to append pairing audit entry",
			zap.String("pairing_request_id", request.ID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Pairing request created",
		zap.String("pairing_request_id", request.ID.String()),
		zap.String("device_id", request.DeviceID),
		zap.String("elderly_person_id", request.ElderlyPersonID.String()),
		zap.Time("expires_at", request.ExpiresAt),
		zap.String("event", "pairing_started"),
	)

	return &CreatePairingResponse{
		PairingRequest: *ToPairingRequestResponse(request),
		PairingCode:    code,
	}, nil
}

// GetStatus fetches a pairing request by code. Expiry is materialized
// lazily here: a pending row past its window is flipped to expired before
// being returned.
func (s *Service) GetStatus(ctx context.Context, pairingCode string) (*PairingRequestResponse, error) {
	request, err := s.pairingRepo.GetByCode(ctx, pairingCode)
	if err != nil {
		return nil, err
	}

	if request.Status == domainPairing.StatusPending && request.IsExpired(s.now()) {
		if err := s.expire(ctx, request); err != nil {
			return nil, err
		}
	}

	return ToPairingRequestResponse(request), nil
}

func (s *Service) Verify(ctx context.Context, pairingCode string, req *VerifyRequest, approvedBy uuid.UUID) (*VerifyResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	request, err := s.pairingRepo.GetByCode(ctx, pairingCode)
	if err != nil {
		return nil, err
	}

	// Expired codes cannot be verified regardless of approve. The read
	// also materializes the expiry so later observers see a terminal row.
	if request.IsExpired(s.now()) {
		if request.Status == domainPairing.StatusPending {
			if err := s.expire(ctx, request); err != nil {
				return nil, err
			}
		}
		return nil, domainPairing.ErrExpired
	}

	if request.Status != domainPairing.StatusPending {
		return nil, domainPairing.ErrNotPending
	}

	if *req.Approve {
		return s.approve(ctx, request, req, approvedBy)
	}
	return s.reject(ctx, request, approvedBy)
}

func (s *Service) approve(ctx context.Context, request *domainPairing.Request, req *VerifyRequest, approvedBy uuid.UUID) (*VerifyResponse, error) {
	deviceName := request.SynthesizedDeviceName()
	if req.DeviceName != nil && *req.DeviceName != "" {
		deviceName = *req.DeviceName
	}

	now := s.now()
	dev := &domainDevice.Device{
		DeviceName:      deviceName,
		DeviceID:        request.DeviceID,
		DeviceType:      request.DeviceType,
		ElderlyPersonID: request.ElderlyPersonID,
		Location:        req.Location,
		Status:          domainDevice.StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	request.Status = domainPairing.StatusPaired
	request.ApprovedBy = &approvedBy
	request.PairedAt = &now
	request.UpdatedAt = now

	entries := []*domainPairing.AssociationLogEntry{
		{
			PairingRequestID: request.ID,
			DeviceID:         &request.DeviceID,
			EventType:        domainPairing.EventVerified,
			UserID:           approvedBy,
			Details:          map[string]interface{}{"device_name": deviceName},
		},
		{
			PairingRequestID: request.ID,
			DeviceID:         &request.DeviceID,
			EventType:        domainPairing.EventPaired,
			UserID:           approvedBy,
			Details:          map[string]interface{}{"device_name": deviceName},
		},
	}

	if err := s.pairingRepo.Approve(ctx, request, dev, entries); err != nil {
		if errors.Is(err, domainPairing.ErrNotPending) {
			// Lost the race against a concurrent verify.
			return nil, domainPairing.ErrNotPending
		}
		return nil, err
	}

	s.notify(ctx, request.ID, domainPairing.StatusPaired)

	logger.Info("Pairing request approved",
		zap.String("pairing_request_id", request.ID.String()),
		zap.String("device_id", request.DeviceID),
		zap.String("device_name", deviceName),
		zap.String("event", "pairing_approved"),
	)

	return &VerifyResponse{
		Success: true,
		Device:  ToDeviceResponse(dev),
	}, nil
}

func (s *Service) reject(ctx context.Context, request *domainPairing.Request, approvedBy uuid.UUID) (*VerifyResponse, error) {
	now := s.now()
	request.Status = domainPairing.StatusRejected
	request.ApprovedBy = &approvedBy
	request.UpdatedAt = now

	entry := &domainPairing.AssociationLogEntry{
		PairingRequestID: request.ID,
		EventType:        domainPairing.EventRejected,
		UserID:           approvedBy,
	}

	if err := s.pairingRepo.Reject(ctx, request, entry); err != nil {
		return nil, err
	}

	s.notify(ctx, request.ID, domainPairing.StatusRejected)

	logger.Info("Pairing request rejected",
		zap.String("pairing_request_id", request.ID.String()),
		zap.String("device_id", request.DeviceID),
		zap.String("event", "pairing_rejected"),
	)

	return &VerifyResponse{
		Success:  true,
		Rejected: true,
	}, nil
}

// expire flips a pending request to expired in storage and mirrors the
// transition on the in-memory copy. A concurrent reader may win the flip;
// that is fine, the observed status is identical.
func (s *Service) expire(ctx context.Context, request *domainPairing.Request) error {
	err := s.pairingRepo.MarkExpired(ctx, request.ID)
	if err != nil && !errors.Is(err, domainPairing.ErrNotPending) {
		return err
	}

	request.Status = domainPairing.StatusExpired
	if err == nil {
		s.notify(ctx, request.ID, domainPairing.StatusExpired)
		logger.Info("Pairing request expired",
			zap.String("pairing_request_id", request.ID.String()),
			zap.String("event", "pairing_expired"),
		)
	}
	return nil
}

func (s *Service) GetLogs(ctx context.Context, requestID uuid.UUID) ([]AssociationLogResponse, error) {
	entries, err := s.pairingRepo.ListLogs(ctx, requestID)
	if err != nil {
		return nil, err
	}

	responses := make([]AssociationLogResponse, len(entries))
	for i, entry := range entries {
		responses[i] = *ToAssociationLogResponse(entry)
	}
	return responses, nil
}

// notify pushes a status transition to subscribers. Failures are logged
// and swallowed; push is a consumer convenience, not part of the pairing
// contract.
func (s *Service) notify(ctx context.Context, requestID uuid.UUID, status domainPairing.Status) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyStatusChange(ctx, requestID, status); err != nil {
		logger.Warn("Failed to publish pairing status change",
			zap.String("pairing_request_id", requestID.String()),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}
