package roster

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRoster = `
people:
  - name: John Doe
    duties:
      - rank: MAJ
        title: COMMANDER
        start: 2021-01-01
      - rank: CPT
        title: PILOT
        start: 2020-01-01
  - name: Jane Roe
`

func TestParse(t *testing.T) {
	roster, err := Parse(strings.NewReader(sampleRoster))
	require.NoError(t, err)

	require.Len(t, roster.People, 2)
	assert.Equal(t, "John Doe", roster.People[0].Name)
	require.Len(t, roster.People[0].Duties, 2)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), roster.People[0].Duties[0].Start.Time)
	assert.Empty(t, roster.People[1].Duties)
}

func TestParse_Empty(t *testing.T) {
	roster, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, roster.People)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "unknown key",
			input:   "people:\n  - name: A\n    callsign: Maverick\n",
			wantErr: "callsign",
		},
		{
			name:    "bad date",
			input:   "people:\n  - name: A\n    duties:\n      - rank: CPT\n        title: PILOT\n        start: soon\n",
			wantErr: "invalid date",
		},
		{
			name:    "blank name",
			input:   "people:\n  - name: '  '\n",
			wantErr: "name is required",
		},
		{
			name:    "duplicate person",
			input:   "people:\n  - name: A\n  - name: ' A'\n",
			wantErr: "listed more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPerson_SortedDuties(t *testing.T) {
	roster, err := Parse(strings.NewReader(sampleRoster))
	require.NoError(t, err)

	p := roster.People[0]
	duties := p.sortedDuties()

	assert.Equal(t, "PILOT", duties[0].Title)
	assert.Equal(t, "COMMANDER", duties[1].Title)
	assert.Equal(t, "COMMANDER", p.Duties[0].Title, "input order is preserved")
}
