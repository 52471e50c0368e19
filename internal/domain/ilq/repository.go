package ilq

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for ILQ score persistence. Scores are an
// append-only time series; there is no update or delete.
type Repository interface {
	Insert(ctx context.Context, record *ScoreRecord) error

	// ListSince returns all scores for a person computed at or after the
	// given instant, ascending by computation time.
	ListSince(ctx context.Context, elderlyPersonID uuid.UUID, since time.Time) ([]*ScoreRecord, error)

	// ListRecent returns the newest records first, capped at limit.
	ListRecent(ctx context.Context, elderlyPersonID uuid.UUID, limit int) ([]*ScoreRecord, error)
}
