package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"date only", "2020-01-01", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"surrounding spaces", " 2021-06-30 ", time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 truncated", "2020-01-01T15:04:05Z", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"garbage", "yesterday", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestDate(t *testing.T) {
	in := time.Date(2020, 12, 31, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), Date(in))
}

func TestFormatDate(t *testing.T) {
	assert.Nil(t, FormatDate(nil))

	d := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NotNil(t, FormatDate(&d))
	assert.Equal(t, "2020-01-01", *FormatDate(&d))
}
