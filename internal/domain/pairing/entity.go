package pairing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Request represents a device pairing request binding a physical device
// to a monitored person via a short-lived numeric code.
type Request struct {
	ID              uuid.UUID
	DeviceID        string
	DeviceType      *string
	PairingCode     string
	ElderlyPersonID uuid.UUID
	RequestedBy     uuid.UUID
	ApprovedBy      *uuid.UUID
	DeviceMetadata  map[string]interface{}
	NetworkInfo     map[string]interface{}
	Status          Status
	ExpiresAt       time.Time
	PairedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Status represents the lifecycle state of a pairing request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaired   Status = "paired"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusPaired || s == StatusRejected || s == StatusExpired
}

// IsExpired reports whether the pairing code's validity window has passed.
// Expiry is a pure function of ExpiresAt; nothing sweeps pending rows in
// the background, so a pending request past its window stays pending in
// storage until the next read observes it.
func (r *Request) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// SynthesizedDeviceName builds the fallback device name used when the
// approver does not supply one: "{device type} ({first 8 of device id})".
func (r *Request) SynthesizedDeviceName() string {
	deviceType := "Device"
	if r.DeviceType != nil && *r.DeviceType != "" {
		deviceType = *r.DeviceType
	}

	shortID := r.DeviceID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	return fmt.Sprintf("%s (%s)", deviceType, shortID)
}

// EventType classifies an association-log entry.
type EventType string

const (
	EventPairingStarted EventType = "pairing_started"
	EventVerified       EventType = "verified"
	EventPaired         EventType = "paired"
	EventRejected       EventType = "rejected"
)

// AssociationLogEntry is one append-only audit record per state transition.
type AssociationLogEntry struct {
	ID               uuid.UUID
	PairingRequestID uuid.UUID
	DeviceID         *string
	EventType        EventType
	UserID           uuid.UUID
	Details          map[string]interface{}
	CreatedAt        time.Time
}
