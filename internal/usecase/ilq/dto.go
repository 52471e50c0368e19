package ilq

import (
	"time"

	"github.com/google/uuid"

	domainILQ "eldercare-monitor/internal/domain/ilq"
)

type TrendRequest struct {
	ElderlyPersonID uuid.UUID `json:"elderly_person_id" validate:"required"`
	Period          *string   `json:"period" validate:"omitempty,max=50"`
	LookbackDays    *int      `json:"lookback_days" validate:"omitempty,min=1,max=365"`
}

type TrendResponse struct {
	TrendDirection  domainILQ.TrendDirection `json:"trend_direction"`
	AverageScore    float64                  `json:"average_score"`
	ScoreVariance   float64                  `json:"score_variance"`
	ChangeRate      float64                  `json:"change_rate"`
	Prediction7Days float64                  `json:"prediction_7days"`
	Insights        []string                 `json:"insights"`
	Recommendations []string                 `json:"recommendations"`
	DataPoints      int                      `json:"data_points"`
}

type ScoreResponse struct {
	ID              uuid.UUID `json:"id"`
	ElderlyPersonID uuid.UUID `json:"elderly_person_id"`
	ComputedAt      time.Time `json:"computed_at"`
	Score           float64   `json:"score"`

	HealthVitalsScore        *float64 `json:"health_vitals_score"`
	PhysicalActivityScore    *float64 `json:"physical_activity_score"`
	CognitiveFunctionScore   *float64 `json:"cognitive_function_score"`
	EnvironmentalSafetyScore *float64 `json:"environmental_safety_score"`
	EmergencyResponseScore   *float64 `json:"emergency_response_score"`
	SocialEngagementScore    *float64 `json:"social_engagement_score"`
}

func ToTrendResponse(r *domainILQ.TrendResult) *TrendResponse {
	if r == nil {
		return nil
	}
	return &TrendResponse{
		TrendDirection:  r.TrendDirection,
		AverageScore:    r.AverageScore,
		ScoreVariance:   r.ScoreVariance,
		ChangeRate:      r.ChangeRate,
		Prediction7Days: r.Prediction7Days,
		Insights:        r.Insights,
		Recommendations: r.Recommendations,
		DataPoints:      r.DataPoints,
	}
}

func ToScoreResponse(r *domainILQ.ScoreRecord) *ScoreResponse {
	if r == nil {
		return nil
	}
	return &ScoreResponse{
		ID:                       r.ID,
		ElderlyPersonID:          r.ElderlyPersonID,
		ComputedAt:               r.ComputedAt,
		Score:                    r.Score,
		HealthVitalsScore:        r.HealthVitalsScore,
		PhysicalActivityScore:    r.PhysicalActivityScore,
		CognitiveFunctionScore:   r.CognitiveFunctionScore,
		EnvironmentalSafetyScore: r.EnvironmentalSafetyScore,
		EmergencyResponseScore:   r.EmergencyResponseScore,
		SocialEngagementScore:    r.SocialEngagementScore,
	}
}
