package ingestion

import (
	"errors"

	domainILQ "eldercare-monitor/internal/domain/ilq"
)

// CompositeScore computes the weighted ILQ composite from a snapshot's
// component scores (weights 30/25/15/15/10/5). When components are
// missing, the remaining weights are renormalized so the composite stays
// on the 0-100 scale. At least one component must be present.
func CompositeScore(snapshot *WellbeingSnapshot) (float64, error) {
	components := map[domainILQ.Component]*float64{
		domainILQ.ComponentHealthVitals:        snapshot.HealthVitalsScore,
		domainILQ.ComponentPhysicalActivity:    snapshot.PhysicalActivityScore,
		domainILQ.ComponentCognitiveFunction:   snapshot.CognitiveFunctionScore,
		domainILQ.ComponentEnvironmentalSafety: snapshot.EnvironmentalSafetyScore,
		domainILQ.ComponentEmergencyResponse:   snapshot.EmergencyResponseScore,
		domainILQ.ComponentSocialEngagement:    snapshot.SocialEngagementScore,
	}

	weightedSum := 0.0
	totalWeight := 0.0
	for component, value := range components {
		if value == nil {
			continue
		}
		weight := domainILQ.ComponentWeights[component]
		weightedSum += *value * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0, errors.New("snapshot carries no component scores")
	}

	score := weightedSum / totalWeight
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}
