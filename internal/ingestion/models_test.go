package ingestion

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWellbeingSnapshot(t *testing.T) {
	personID := uuid.New()
	payload := []byte(`{
		"elderly_person_id": "` + personID.String() + `",
		"timestamp": "2025-06-01T08:00:00Z",
		"health_vitals_score": 82.5,
		"physical_activity_score": 61
	}`)

	snapshot, err := ParseWellbeingSnapshot(payload)
	require.NoError(t, err)
	assert.Equal(t, personID, snapshot.ElderlyPersonID)
	require.NotNil(t, snapshot.HealthVitalsScore)
	assert.InDelta(t, 82.5, *snapshot.HealthVitalsScore, 1e-9)
	assert.Nil(t, snapshot.CognitiveFunctionScore)
}

func TestParseWellbeingSnapshot_MissingPerson(t *testing.T) {
	_, err := ParseWellbeingSnapshot([]byte(`{"health_vitals_score": 80}`))
	assert.Error(t, err)
}

func TestParseWellbeingSnapshot_OutOfRange(t *testing.T) {
	personID := uuid.New()
	payload := []byte(`{"elderly_person_id": "` + personID.String() + `", "health_vitals_score": 120}`)

	_, err := ParseWellbeingSnapshot(payload)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestParseWellbeingSnapshot_Malformed(t *testing.T) {
	_, err := ParseWellbeingSnapshot([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseWellbeingSnapshot_DefaultsTimestamp(t *testing.T) {
	personID := uuid.New()
	payload := []byte(`{"elderly_person_id": "` + personID.String() + `", "social_engagement_score": 44}`)

	snapshot, err := ParseWellbeingSnapshot(payload)
	require.NoError(t, err)
	assert.False(t, snapshot.Timestamp.IsZero())
}
