package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/acts/pkg/model"
)

func TestPersonUpdate_HasAstronautFields(t *testing.T) {
	assert.False(t, PersonUpdate{DefaultCareerStartDate: time.Now()}.HasAstronautFields())

	rank := "CPT"
	assert.True(t, PersonUpdate{CurrentRank: &rank}.HasAstronautFields())

	end := time.Now()
	assert.True(t, PersonUpdate{CareerEndDate: &end}.HasAstronautFields())
}

func TestPersonUpdate_Apply(t *testing.T) {
	start := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)
	detail := &model.AstronautDetail{
		ID:               4,
		PersonID:         3,
		CurrentRank:      "CPT",
		CurrentDutyTitle: "PILOT",
		CareerStartDate:  start,
	}

	rank := "MAJ"
	end := time.Date(2024, 2, 3, 17, 45, 0, 0, time.UTC)
	PersonUpdate{CurrentRank: &rank, CareerEndDate: &end}.Apply(detail)

	assert.Equal(t, "MAJ", detail.CurrentRank)
	assert.Equal(t, "PILOT", detail.CurrentDutyTitle, "absent fields are untouched")
	assert.Equal(t, start, detail.CareerStartDate)
	require.NotNil(t, detail.CareerEndDate)
	assert.Equal(t, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), *detail.CareerEndDate)
	assert.Equal(t, int64(4), detail.ID)
}
