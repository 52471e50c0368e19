package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainILQ "eldercare-monitor/internal/domain/ilq"
	"eldercare-monitor/internal/logger"
)

func init() {
	_ = logger.Init("development")
}

type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Insert(ctx context.Context, record *domainILQ.ScoreRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockScoreRepository) ListSince(ctx context.Context, elderlyPersonID uuid.UUID, since time.Time) ([]*domainILQ.ScoreRecord, error) {
	args := m.Called(ctx, elderlyPersonID, since)
	return nil, args.Error(1)
}

func (m *MockScoreRepository) ListRecent(ctx context.Context, elderlyPersonID uuid.UUID, limit int) ([]*domainILQ.ScoreRecord, error) {
	args := m.Called(ctx, elderlyPersonID, limit)
	return nil, args.Error(1)
}

func TestProcessSnapshot(t *testing.T) {
	repo := new(MockScoreRepository)
	processor := NewProcessor(repo)

	var stored *domainILQ.ScoreRecord
	repo.On("Insert", mock.Anything, mock.AnythingOfType("*ilq.ScoreRecord")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domainILQ.ScoreRecord)
		}).
		Return(nil)

	snapshot := fullSnapshot()
	processor.ProcessSnapshot(snapshot)

	require.NotNil(t, stored)
	assert.Equal(t, snapshot.ElderlyPersonID, stored.ElderlyPersonID)
	assert.InDelta(t, 75.5, stored.Score, 1e-9)
	assert.Equal(t, snapshot.HealthVitalsScore, stored.HealthVitalsScore)
}

func TestProcessSnapshot_EmptySnapshotDropped(t *testing.T) {
	repo := new(MockScoreRepository)
	processor := NewProcessor(repo)

	processor.ProcessSnapshot(&WellbeingSnapshot{ElderlyPersonID: uuid.New()})

	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestProcessSnapshot_StorageFailureSwallowed(t *testing.T) {
	repo := new(MockScoreRepository)
	processor := NewProcessor(repo)

	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	// Must not panic; the failure is logged and the snapshot dropped.
	processor.ProcessSnapshot(fullSnapshot())
	repo.AssertExpectations(t)
}
