package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainILQ "eldercare-monitor/internal/domain/ilq"
	"eldercare-monitor/internal/infrastructure/database/postgres/models"
)

// ILQScoreRepository implements the ilq.Repository interface.
type ILQScoreRepository struct {
	db *DB
}

func NewILQScoreRepository(db *DB) domainILQ.Repository {
	return &ILQScoreRepository{db: db}
}

func (r *ILQScoreRepository) Insert(ctx context.Context, record *domainILQ.ScoreRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()

	dbModel := toILQScoreModel(record)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to insert ilq score: %w", err)
	}

	return nil
}

func (r *ILQScoreRepository) ListSince(ctx context.Context, elderlyPersonID uuid.UUID, since time.Time) ([]*domainILQ.ScoreRecord, error) {
	var dbModels []models.ILQScoreModel
	err := r.db.DB.WithContext(ctx).
		Where("elderly_person_id = ? AND computed_at >= ?", elderlyPersonID, since).
		Order("computed_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ilq scores: %w", err)
	}

	records := make([]*domainILQ.ScoreRecord, len(dbModels))
	for i := range dbModels {
		records[i] = toILQScoreEntity(&dbModels[i])
	}
	return records, nil
}

func (r *ILQScoreRepository) ListRecent(ctx context.Context, elderlyPersonID uuid.UUID, limit int) ([]*domainILQ.ScoreRecord, error) {
	var dbModels []models.ILQScoreModel
	err := r.db.DB.WithContext(ctx).
		Where("elderly_person_id = ?", elderlyPersonID).
		Order("computed_at DESC").
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent ilq scores: %w", err)
	}

	records := make([]*domainILQ.ScoreRecord, len(dbModels))
	for i := range dbModels {
		records[i] = toILQScoreEntity(&dbModels[i])
	}
	return records, nil
}

func toILQScoreModel(r *domainILQ.ScoreRecord) *models.ILQScoreModel {
	return &models.ILQScoreModel{
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
		CreatedAt:                r.CreatedAt,
	}
}

func toILQScoreEntity(m *models.ILQScoreModel) *domainILQ.ScoreRecord {
	return &domainILQ.ScoreRecord{
		ID:                       m.ID,
		ElderlyPersonID:          m.ElderlyPersonID,
		ComputedAt:               m.ComputedAt,
		Score:                    m.Score,
		HealthVitalsScore:        m.HealthVitalsScore,
		PhysicalActivityScore:    m.PhysicalActivityScore,
		CognitiveFunctionScore:   m.CognitiveFunctionScore,
		EnvironmentalSafetyScore: m.EnvironmentalSafetyScore,
		EmergencyResponseScore:   m.EmergencyResponseScore,
		SocialEngagementScore:    m.SocialEngagementScore,
		CreatedAt:                m.CreatedAt,
	}
}
