package ilq

import (
	"time"

	"github.com/google/uuid"
)

// ScoreRecord is one computed Independent Living Quotient snapshot for a
// monitored person. Rows are append-only; the composite Score is a weighted
// combination of the six components, written at computation time and never
// recomputed by readers.
type ScoreRecord struct {
	ID              uuid.UUID
	ElderlyPersonID uuid.UUID
	ComputedAt      time.Time
	Score           float64

	HealthVitalsScore        *float64
	PhysicalActivityScore    *float64
	CognitiveFunctionScore   *float64
	EnvironmentalSafetyScore *float64
	EmergencyResponseScore   *float64
	SocialEngagementScore    *float64

	CreatedAt time.Time
}

// Component identifies one of the six ILQ sub-scores.
type Component string

const (
	ComponentHealthVitals        Component = "health_vitals"
	ComponentPhysicalActivity    Component = "physical_activity"
	ComponentCognitiveFunction   Component = "cognitive_function"
	ComponentEnvironmentalSafety Component = "environmental_safety"
	ComponentEmergencyResponse   Component = "emergency_response"
	ComponentSocialEngagement    Component = "social_engagement"
)

// ComponentWeights are the composite weights used when a score is written.
var ComponentWeights = map[Component]float64{
	ComponentHealthVitals:        30,
	ComponentPhysicalActivity:    25,
	ComponentCognitiveFunction:   15,
	ComponentEnvironmentalSafety: 15,
	ComponentEmergencyResponse:   10,
	ComponentSocialEngagement:    5,
}

// ComponentValue returns the sub-score for the named component, nil when
// that component was not measured.
func (r *ScoreRecord) ComponentValue(c Component) *float64 {
	switch c {
	case ComponentHealthVitals:
		return r.HealthVitalsScore
	case ComponentPhysicalActivity:
		return r.PhysicalActivityScore
	case ComponentCognitiveFunction:
		return r.CognitiveFunctionScore
	case ComponentEnvironmentalSafety:
		return r.EnvironmentalSafetyScore
	case ComponentEmergencyResponse:
		return r.EmergencyResponseScore
	case ComponentSocialEngagement:
		return r.SocialEngagementScore
	}
	return nil
}

// TrendDirection classifies the short-term movement of the composite score.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// TrendResult is the on-demand output of the trend analyzer. It is never
// persisted.
type TrendResult struct {
	TrendDirection  TrendDirection
	AverageScore    float64
	ScoreVariance   float64
	ChangeRate      float64
	Prediction7Days float64
	Insights        []string
	Recommendations []string
	DataPoints      int
}
