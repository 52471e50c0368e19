package ilq

import (
	"context"
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainILQ.ScoreRecord), args.Error(1)
}

func (m *MockScoreRepository) ListRecent(ctx context.Context, elderlyPersonID uuid.UUID, limit int) ([]*domainILQ.ScoreRecord, error) {
	args := m.Called(ctx, elderlyPersonID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainILQ.ScoreRecord), args.Error(1)
}

// dailySeries builds one record per day ending today, ascending.
func dailySeries(scores []float64) []*domainILQ.ScoreRecord {
	personID := uuid.New()
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	records := make([]*domainILQ.ScoreRecord, len(scores))
	for i, score := range scores {
		records[i] = &domainILQ.ScoreRecord{
			ID:              uuid.New(),
			ElderlyPersonID: personID,
			ComputedAt:      base.AddDate(0, 0, i),
			Score:           score,
		}
	}
	return records
}

func TestAnalyze_StatisticsFixture(t *testing.T) {
	result := analyze(dailySeries([]float64{60, 70, 80}))

	assert.InDelta(t, 70.0, result.AverageScore, 1e-9)
	assert.InDelta(t, 66.6667, result.ScoreVariance, 1e-3)
	assert.Equal(t, 3, result.DataPoints)
}

func TestAnalyze_ImprovingSeries(t *testing.T) {
	scores := []float64{40, 42, 41, 43, 45, 50, 55, 60, 62, 65, 68, 70, 72, 75}
	result := analyze(dailySeries(scores))

	assert.Equal(t, domainILQ.TrendImproving, result.TrendDirection)
	assert.InDelta(t, 35.0/13.0, result.ChangeRate, 1e-9)

	expectedPrediction := result.AverageScore + result.ChangeRate*7
	assert.InDelta(t, expectedPrediction, result.Prediction7Days, 1e-9)
	assert.LessOrEqual(t, result.Prediction7Days, 100.0)
	assert.Equal(t, 14, result.DataPoints)
}

func TestAnalyze_DecliningSeries(t *testing.T) {
	scores := []float64{75, 72, 70, 68, 65, 62, 60, 55, 50, 45, 43, 41, 42, 40}
	result := analyze(dailySeries(scores))

	assert.Equal(t, domainILQ.TrendDeclining, result.TrendDirection)
	assert.Negative(t, result.ChangeRate)
}

func TestAnalyze_ThresholdBoundaryIsStable(t *testing.T) {
	// mean(last 7) - mean(first 7) is exactly +3: strict inequality keeps
	// the classification stable.
	scores := []float64{50, 50, 50, 50, 50, 50, 50, 53, 53, 53, 53, 53, 53, 53}
	result := analyze(dailySeries(scores))
	assert.Equal(t, domainILQ.TrendStable, result.TrendDirection)

	// Just past the threshold flips it.
	scores[13] = 53.8
	result = analyze(dailySeries(scores))
	assert.Equal(t, domainILQ.TrendImproving, result.TrendDirection)
}

func TestAnalyze_NegativeBoundaryIsStable(t *testing.T) {
	scores := []float64{53, 53, 53, 53, 53, 53, 53, 50, 50, 50, 50, 50, 50, 50}
	result := analyze(dailySeries(scores))
	assert.Equal(t, domainILQ.TrendStable, result.TrendDirection)
}

func TestAnalyze_SingleDataPoint(t *testing.T) {
	result := analyze(dailySeries([]float64{70}))

	assert.Equal(t, 1, result.DataPoints)
	assert.Equal(t, 0.0, result.ChangeRate)
	assert.Equal(t, domainILQ.TrendStable, result.TrendDirection)
	assert.InDelta(t, 70.0, result.AverageScore, 1e-9)
	assert.InDelta(t, 70.0, result.Prediction7Days, 1e-9)
}

func TestAnalyze_PredictionClamped(t *testing.T) {
	scores := []float64{60, 80, 95, 99}
	result := analyze(dailySeries(scores))
	assert.LessOrEqual(t, result.Prediction7Days, 100.0)

	declining := []float64{40, 20, 8, 2}
	result = analyze(dailySeries(declining))
	assert.GreaterOrEqual(t, result.Prediction7Days, 0.0)
}

func floatPtr(v float64) *float64 { return &v }

func TestAnalyze_ComponentInsights(t *testing.T) {
	records := dailySeries([]float64{70, 70, 70, 70, 70, 70})
	// Physical activity drops 12 points across the last 5 records; health
	// vitals moves only 2 and stays quiet.
	records[1].PhysicalActivityScore = floatPtr(72)
	records[5].PhysicalActivityScore = floatPtr(60)
	records[1].HealthVitalsScore = floatPtr(80)
	records[5].HealthVitalsScore = floatPtr(82)

	result := analyze(records)

	require.NotEmpty(t, result.Insights)
	assert.Contains(t, result.Insights,
		"Physical activity score dropped by 12.0 points over the last readings.")

	for _, insight := range result.Insights[1:] {
		assert.NotContains(t, insight, "Health vitals")
	}
}

func TestAnalyze_LowComponentRecommendations(t *testing.T) {
	records := dailySeries([]float64{70, 70, 70})
	records[2].PhysicalActivityScore = floatPtr(35)
	records[2].SocialEngagementScore = floatPtr(48)

	result := analyze(records)

	require.Len(t, result.Recommendations, 3)
	assert.Contains(t, result.Recommendations[1], "physical activity")
	assert.Contains(t, result.Recommendations[2], "social engagement")
}

func TestAnalyzeTrend_InsufficientData(t *testing.T) {
	repo := new(MockScoreRepository)
	svc := NewService(repo, 30)

	personID := uuid.New()
	repo.On("ListSince", mock.Anything, personID, mock.AnythingOfType("time.Time")).
		Return([]*domainILQ.ScoreRecord{}, nil)

	_, err := svc.AnalyzeTrend(context.Background(), &TrendRequest{ElderlyPersonID: personID})
	assert.ErrorIs(t, err, domainILQ.ErrInsufficientData)
}

func TestAnalyzeTrend_LookbackWindow(t *testing.T) {
	repo := new(MockScoreRepository)
	svc := NewService(repo, 30)
	now := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	personID := uuid.New()
	lookback := 7
	repo.On("ListSince", mock.Anything, personID, now.AddDate(0, 0, -lookback)).
		Return(dailySeries([]float64{60, 65, 70}), nil)

	resp, err := svc.AnalyzeTrend(context.Background(), &TrendRequest{
		ElderlyPersonID: personID,
		LookbackDays:    &lookback,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.DataPoints)
	repo.AssertExpectations(t)
}

func TestListScores_DefaultLimit(t *testing.T) {
	repo := new(MockScoreRepository)
	svc := NewService(repo, 30)

	personID := uuid.New()
	repo.On("ListRecent", mock.Anything, personID, 100).
		Return(dailySeries([]float64{70, 72}), nil)

	scores, err := svc.ListScores(context.Background(), personID, 0)
	require.NoError(t, err)
	assert.Len(t, scores, 2)
	repo.AssertExpectations(t)
}
