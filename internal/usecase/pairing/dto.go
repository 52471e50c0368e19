package pairing

import (
	"time"

	"github.com/google/uuid"

	domainDevice "eldercare-monitor/internal/domain/device"
	domainPairing "eldercare-monitor/internal/domain/pairing"
)

type CreatePairingRequest struct {
	DeviceID        string                 `json:"device_id" validate:"required,min=3,max=255"`
	DeviceType      *string                `json:"device_type" validate:"omitempty,max=100"`
	ElderlyPersonID uuid.UUID              `json:"elderly_person_id" validate:"required"`
	DeviceMetadata  map[string]interface{} `json:"device_metadata"`
	NetworkInfo     map[string]interface{} `json:"network_info"`
}

type VerifyRequest struct {
	Approve    *bool   `json:"approve" validate:"required"`
	DeviceName *string `json:"device_name" validate:"omitempty,min=2,max=255"`
	Location   *string `json:"location" validate:"omitempty,max=255"`
}

type PairingRequestResponse struct {
	ID              uuid.UUID              `json:"id"`
	DeviceID        string                 `json:"device_id"`
	DeviceType      *string                `json:"device_type"`
	PairingCode     string                 `json:"pairing_code"`
	ElderlyPersonID uuid.UUID              `json:"elderly_person_id"`
	RequestedBy     uuid.UUID              `json:"requested_by"`
	ApprovedBy      *uuid.UUID             `json:"approved_by"`
	DeviceMetadata  map[string]interface{} `json:"device_metadata,omitempty"`
	NetworkInfo     map[string]interface{} `json:"network_info,omitempty"`
	Status          domainPairing.Status   `json:"status"`
	ExpiresAt       time.Time              `json:"expires_at"`
	PairedAt        *time.Time             `json:"paired_at"`
	CreatedAt       time.Time              `json:"created_at"`
}

type CreatePairingResponse struct {
	PairingRequest PairingRequestResponse `json:"pairing_request"`
	PairingCode    string                 `json:"pairing_code"`
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
}

type VerifyResponse struct {
	Success  bool            `json:"success"`
	Rejected bool            `json:"rejected,omitempty"`
	Device   *DeviceResponse `json:"device,omitempty"`
}

type AssociationLogResponse struct {
	ID               uuid.UUID               `json:"id"`
	PairingRequestID uuid.UUID               `json:"pairing_request_id"`
	DeviceID         *string                 `json:"device_id"`
	EventType        domainPairing.EventType `json:"event_type"`
	UserID           uuid.UUID               `json:"user_id"`
	Details          map[string]interface{}  `json:"details,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
}

func ToPairingRequestResponse(r *domainPairing.Request) *PairingRequestResponse {
	if r == nil {
		return nil
	}
	return &PairingRequestResponse{
		ID:              r.ID,
		DeviceID:        r.DeviceID,
		DeviceType:      r.DeviceType,
		PairingCode:     r.PairingCode,
		ElderlyPersonID: r.ElderlyPersonID,
		RequestedBy:     r.RequestedBy,
		ApprovedBy:      r.ApprovedBy,
		DeviceMetadata:  r.DeviceMetadata,
		NetworkInfo:     r.NetworkInfo,
		Status:          r.Status,
		ExpiresAt:       r.ExpiresAt,
		PairedAt:        r.PairedAt,
		CreatedAt:       r.CreatedAt,
	}
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
	}
}

func ToAssociationLogResponse(e *domainPairing.AssociationLogEntry) *AssociationLogResponse {
	if e == nil {
		return nil
	}
	return &AssociationLogResponse{
		ID:               e.ID,
		PairingRequestID: e.PairingRequestID,
		DeviceID:         e.DeviceID,
		EventType:        e.EventType,
		UserID:           e.UserID,
		Details:          e.Details,
		CreatedAt:        e.CreatedAt,
	}
}
