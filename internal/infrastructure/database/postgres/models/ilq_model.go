package models

import (
	"time"

	"github.com/google/uuid"
)

// ILQScoreModel represents one row of the append-only ILQ score series.
type ILQScoreModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ElderlyPersonID uuid.UUID `gorm:"type:uuid;not null;index:idx_ilq_person_time"`
	ComputedAt      time.Time `gorm:"not null;index:idx_ilq_person_time"`
	Score           float64   `gorm:"type:numeric(5,2);not null"`

	HealthVitalsScore        *float64 `gorm:"type:numeric(5,2)"`
	PhysicalActivityScore    *float64 `gorm:"type:numeric(5,2)"`
	CognitiveFunctionScore   *float64 `gorm:"type:numeric(5,2)"`
	EnvironmentalSafetyScore *float64 `gorm:"type:numeric(5,2)"`
	EmergencyResponseScore   *float64 `gorm:"type:numeric(5,2)"`
	SocialEngagementScore    *float64 `gorm:"type:numeric(5,2)"`

	CreatedAt time.Time `gorm:"not null"`
}

func (ILQScoreModel) TableName() string {
	return "ilq_scores"
}
