package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WellbeingSnapshot is the telemetry rollup published per person by the
// device fleet. Component scores are 0-100; missing components are nil.
type WellbeingSnapshot struct {
	ElderlyPersonID uuid.UUID `json:"elderly_person_id"`
	Timestamp       time.Time `json:"timestamp"`

	HealthVitalsScore        *float64 `json:"health_vitals_score"`
	PhysicalActivityScore    *float64 `json:"physical_activity_score"`
	CognitiveFunctionScore   *float64 `json:"cognitive_function_score"`
	EnvironmentalSafetyScore *float64 `json:"environmental_safety_score"`
	EmergencyResponseScore   *float64 `json:"emergency_response_score"`
	SocialEngagementScore    *float64 `json:"social_engagement_score"`
}

// ParseWellbeingSnapshot decodes and validates an MQTT payload.
func ParseWellbeingSnapshot(payload []byte) (*WellbeingSnapshot, error) {
	var snapshot WellbeingSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("malformed wellbeing payload: %w", err)
	}

	if snapshot.ElderlyPersonID == uuid.Nil {
		return nil, errors.New("wellbeing payload missing elderly_person_id")
	}
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now()
	}

	for name, v := range map[string]*float64{
		"health_vitals_score":        snapshot.HealthVitalsScore,
		"physical_activity_score":    snapshot.PhysicalActivityScore,
		"cognitive_function_score":   snapshot.CognitiveFunctionScore,
		"environmental_safety_score": snapshot.EnvironmentalSafetyScore,
		"emergency_response_score":   snapshot.EmergencyResponseScore,
		"social_engagement_score":    snapshot.SocialEngagementScore,
	} {
		if v != nil && (*v < 0 || *v > 100) {
			return nil, fmt.Errorf("component %s out of range: %.2f", name, *v)
		}
	}

	return &snapshot, nil
}
