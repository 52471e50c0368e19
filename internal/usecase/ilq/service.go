package ilq

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainILQ "eldercare-monitor/internal/domain/ilq"
	"eldercare-monitor/internal/logger"
	appErrors "eldercare-monitor/pkg/errors"
	"eldercare-monitor/pkg/utils"
)

// Trend classification thresholds and windows. A change of more than 3
// score points between the oldest and newest 7-reading windows moves the
// classification off stable; the comparison is strict, exactly ±3 stays
// stable.
const (
	trendWindow        = 7
	trendThreshold     = 3.0
	componentWindow    = 5
	componentThreshold = 5.0
	lowComponentCutoff = 50.0
)

// Service implements the ILQ trend analyzer use cases.
type Service struct {
	scoreRepo           domainILQ.Repository
	defaultLookbackDays int

	now func() time.Time
}

func NewService(scoreRepo domainILQ.Repository, defaultLookbackDays int) *Service {
	if defaultLookbackDays <= 0 {
		defaultLookbackDays = 30
	}
	return &Service{
		scoreRepo:           scoreRepo,
		defaultLookbackDays: defaultLookbackDays,
		now:                 time.Now,
	}
}

// AnalyzeTrend computes aggregate statistics, a trend classification, a
// linear 7-day forecast and natural-language insights over a person's
// composite score history. The period parameter is accepted for API
// compatibility but does not alter the computation.
func (s *Service) AnalyzeTrend(ctx context.Context, req *TrendRequest) (*TrendResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	lookbackDays := s.defaultLookbackDays
	if req.LookbackDays != nil {
		lookbackDays = *req.LookbackDays
	}

	since := s.now().AddDate(0, 0, -lookbackDays)
	records, err := s.scoreRepo.ListSince(ctx, req.ElderlyPersonID, since)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domainILQ.ErrInsufficientData
	}

	result := analyze(records)

	logger.Info("ILQ trend computed",
		zap.String("elderly_person_id", req.ElderlyPersonID.String()),
		zap.Int("data_points", result.DataPoints),
		zap.String("trend_direction", string(result.TrendDirection)),
		zap.Float64("average_score", result.AverageScore),
	)

	return ToTrendResponse(result), nil
}

// analyze derives the full trend result from an ascending score series.
// The caller guarantees at least one record.
func analyze(records []*domainILQ.ScoreRecord) *domainILQ.TrendResult {
	scores := make([]float64, len(records))
	for i, r := range records {
		scores[i] = r.Score
	}

	average := mean(scores)
	variance := populationVariance(scores, average)

	// The recent and older windows may overlap when fewer than 14
	// readings exist; no distinct-window guarantee is made.
	recent := lastN(scores, trendWindow)
	older := scores[:min(trendWindow, len(scores))]
	change := mean(recent) - mean(older)

	direction := domainILQ.TrendStable
	switch {
	case change > trendThreshold:
		direction = domainILQ.TrendImproving
	case change < -trendThreshold:
		direction = domainILQ.TrendDeclining
	}

	changeRate := 0.0
	first, last := records[0], records[len(records)-1]
	if elapsed := last.ComputedAt.Sub(first.ComputedAt); elapsed > 0 {
		elapsedDays := elapsed.Hours() / 24
		changeRate = (last.Score - first.Score) / elapsedDays
	}

	// Linear extrapolation anchored on the window average, not the
	// latest reading.
	prediction := clamp(average+changeRate*7, 0, 100)

	return &domainILQ.TrendResult{
		TrendDirection:  direction,
		AverageScore:    average,
		ScoreVariance:   variance,
		ChangeRate:      changeRate,
		Prediction7Days: prediction,
		Insights:        buildInsights(records, direction, changeRate),
		Recommendations: buildRecommendations(records, direction),
		DataPoints:      len(records),
	}
}

func (s *Service) ListScores(ctx context.Context, elderlyPersonID uuid.UUID, limit int) ([]ScoreResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	records, err := s.scoreRepo.ListRecent(ctx, elderlyPersonID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]ScoreResponse, len(records))
	for i, record := range records {
		responses[i] = *ToScoreResponse(record)
	}
	return responses, nil
}

var componentLabels = []struct {
	component domainILQ.Component
	label     string
}{
	{domainILQ.ComponentHealthVitals, "Health vitals"},
	{domainILQ.ComponentPhysicalActivity, "Physical activity"},
	{domainILQ.ComponentCognitiveFunction, "Cognitive function"},
	{domainILQ.ComponentEnvironmentalSafety, "Environmental safety"},
	{domainILQ.ComponentEmergencyResponse, "Emergency response"},
	{domainILQ.ComponentSocialEngagement, "Social engagement"},
}

func buildInsights(records []*domainILQ.ScoreRecord, direction domainILQ.TrendDirection, changeRate float64) []string {
	insights := []string{}

	switch direction {
	case domainILQ.TrendImproving:
		insights = append(insights, fmt.Sprintf(
			"Independent living score is improving at %.2f points per day.", changeRate))
	case domainILQ.TrendDeclining:
		insights = append(insights, fmt.Sprintf(
			"Independent living score is declining at %.2f points per day.", math.Abs(changeRate)))
	default:
		insights = append(insights, fmt.Sprintf(
			"Independent living score is stable, changing %.2f points per day.", changeRate))
	}

	recent := records
	if len(recent) > componentWindow {
		recent = recent[len(recent)-componentWindow:]
	}
	first, last := recent[0], recent[len(recent)-1]

	for _, c := range componentLabels {
		firstValue := first.ComponentValue(c.component)
		lastValue := last.ComponentValue(c.component)
		if firstValue == nil || lastValue == nil {
			continue
		}

		delta := *lastValue - *firstValue
		if math.Abs(delta) <= componentThreshold {
			continue
		}

		if delta > 0 {
			insights = append(insights, fmt.Sprintf(
				"%s score improved by %.1f points over the last readings.", c.label, delta))
		} else {
			insights = append(insights, fmt.Sprintf(
				"%s score dropped by %.1f points over the last readings.", c.label, math.Abs(delta)))
		}
	}

	return insights
}

func buildRecommendations(records []*domainILQ.ScoreRecord, direction domainILQ.TrendDirection) []string {
	recommendations := []string{}

	switch direction {
	case domainILQ.TrendDeclining:
		recommendations = append(recommendations,
			"Schedule a caregiver check-in to review recent changes in daily routine and vitals.")
	case domainILQ.TrendImproving:
		recommendations = append(recommendations,
			"Current care plan is working well. Keep the existing routine and monitoring cadence.")
	default:
		recommendations = append(recommendations,
			"Maintain the current care plan and continue regular monitoring.")
	}

	latest := records[len(records)-1]
	if v := latest.PhysicalActivityScore; v != nil && *v < lowComponentCutoff {
		recommendations = append(recommendations,
			"Encourage light daily physical activity such as short assisted walks.")
	}
	if v := latest.SocialEngagementScore; v != nil && *v < lowComponentCutoff {
		recommendations = append(recommendations,
			"Increase social engagement through family visits or community activities.")
	}

	return recommendations
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationVariance divides by n, not n-1; the series is treated as the
// whole population, not a sample.
func populationVariance(values []float64, avg float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - avg
		sum += d * d
	}
	return sum / float64(len(values))
}

func lastN(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
