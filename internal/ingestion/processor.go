package ingestion

import (
	"context"
	"time"

	"go.uber.org/zap"

	domainILQ "eldercare-monitor/internal/domain/ilq"
	"eldercare-monitor/internal/logger"
)

// Processor turns wellbeing snapshots into ILQ score rows. Storage
// failures are logged and dropped; there is no retry.
type Processor struct {
	scoreRepo domainILQ.Repository
	timeout   time.Duration
}

func NewProcessor(scoreRepo domainILQ.Repository) *Processor {
	return &Processor{
		scoreRepo: scoreRepo,
		timeout:   10 * time.Second,
	}
}

// ProcessSnapshot computes the composite and appends a score row.
func (p *Processor) ProcessSnapshot(snapshot *WellbeingSnapshot) {
	score, err := CompositeScore(snapshot)
	if err != nil {
		logger.Warn("Dropping wellbeing snapshot",
			zap.String("elderly_person_id", snapshot.ElderlyPersonID.String()),
			zap.Error(err),
		)
		return
	}

	record := &domainILQ.ScoreRecord{
		ElderlyPersonID:          snapshot.ElderlyPersonID,
		ComputedAt:               snapshot.Timestamp,
		Score:                    score,
		HealthVitalsScore:        snapshot.HealthVitalsScore,
		PhysicalActivityScore:    snapshot.PhysicalActivityScore,
		CognitiveFunctionScore:   snapshot.CognitiveFunctionScore,
		EnvironmentalSafetyScore: snapshot.EnvironmentalSafetyScore,
		EmergencyResponseScore:   snapshot.EmergencyResponseScore,
		SocialEngagementScore:    snapshot.SocialEngagementScore,
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.scoreRepo.Insert(ctx, record); err != nil {
		logger.Error("Failed to store ILQ score",
			zap.String("elderly_person_id", snapshot.ElderlyPersonID.String()),
			zap.Error(err),
		)
		return
	}

	logger.Debug("ILQ score stored",
		zap.String("elderly_person_id", snapshot.ElderlyPersonID.String()),
		zap.Float64("score", score),
		zap.Time("computed_at", record.ComputedAt),
	)
}
