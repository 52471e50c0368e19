package pairing

import (
	"context"

	"github.com/google/uuid"

	"eldercare-monitor/internal/domain/device"
)

// Repository defines the interface for pairing request persistence.
//
// Approve and Reject are transactional: the status flip is conditional on
// the row still being pending, so a concurrent verify on the same code
// loses with ErrNotPending instead of double-applying.
type Repository interface {
	Create(ctx context.Context, request *Request) error
	GetByCode(ctx context.Context, pairingCode string) (*Request, error)
	GetByID(ctx context.Context, requestID uuid.UUID) (*Request, error)

	// MarkExpired flips a pending request to expired. A no-op returning
	// ErrNotPending if the row already left pending.
	MarkExpired(ctx context.Context, requestID uuid.UUID) error

	// Approve creates the device, marks the request paired and appends the
	// verified/paired log entries in a single transaction.
	Approve(ctx context.Context, request *Request, dev *device.Device, entries []*AssociationLogEntry) error

	// Reject marks the request rejected and appends the rejection log entry
	// in a single transaction.
	Reject(ctx context.Context, request *Request, entry *AssociationLogEntry) error

	AppendLog(ctx context.Context, entry *AssociationLogEntry) error
	ListLogs(ctx context.Context, requestID uuid.UUID) ([]*AssociationLogEntry, error)
}

// Notifier pushes pairing status transitions to interested clients so they
// do not have to poll GetStatus.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, requestID uuid.UUID, status Status) error
}
