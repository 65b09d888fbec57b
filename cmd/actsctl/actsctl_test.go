package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/acts/pkg/audit"
	"github.com/doodlesbykumbi/acts/pkg/config"
	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/query"
	"github.com/doodlesbykumbi/acts/pkg/roster"
)

func TestRootCommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"server", "db", "wait", "configuration", "person", "duty", "roster", "log"} {
		assert.Contains(t, names, want)
	}
}

func TestPendingMigrations(t *testing.T) {
	files := []string{
		"20240101000003_create_astronaut_duties.up.sql",
		"20240101000001_create_people.up.sql",
		"README.up.sql",
		"20240101000002_create_astronaut_details.up.sql",
	}

	assert.Equal(t, []string{
		"20240101000002_create_astronaut_details.up.sql",
		"20240101000003_create_astronaut_duties.up.sql",
	}, pendingMigrations(files, 20240101000001))
	assert.Len(t, pendingMigrations(files, 0), 3)
	assert.Empty(t, pendingMigrations(files, 20240101000003))
}

func TestWritePeople(t *testing.T) {
	rank := "CPT"
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	people := []model.PersonAstronaut{
		{PersonID: 1, Name: "John Doe", CurrentRank: &rank, CareerStartDate: &start},
		{PersonID: 2, Name: "Jane Roe"},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writePeople(&buf, people, "text"))
		out := buf.String()
		assert.Contains(t, out, "NAME")
		assert.Contains(t, out, "John Doe")
		assert.Contains(t, out, "2020-01-01")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writePeople(&buf, people, "json"))
		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Len(t, decoded, 2)
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, writePeople(&bytes.Buffer{}, people, "xml"))
	})
}

func TestWritePersonDuties(t *testing.T) {
	title := "COMMANDER"
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	writePersonDuties(&buf, &query.PersonDuties{
		Person: model.PersonAstronaut{PersonID: 1, Name: "John Doe", CurrentDutyTitle: &title, CareerStartDate: &start},
		Duties: []model.AstronautDuty{
			{Rank: "MAJ", DutyTitle: "COMMANDER", DutyStartDate: end.AddDate(0, 0, 1)},
			{Rank: "CPT", DutyTitle: "PILOT", DutyStartDate: start, DutyEndDate: &end},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "John Doe (id 1)")
	assert.Contains(t, out, "Duty: COMMANDER")
	assert.Contains(t, out, "2020-12-31")

	buf.Reset()
	writePersonDuties(&buf, &query.PersonDuties{Person: model.PersonAstronaut{PersonID: 2, Name: "Jane Roe"}})
	assert.Contains(t, buf.String(), "No astronaut career")
}

func TestWriteEntries(t *testing.T) {
	entries := []audit.Entry{
		{
			Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
			Level:     audit.LevelError,
			Message:   "CreatePerson failed",
			Exception: "person already exists",
			Source:    "CreatePerson",
			UserID:    "cli:root",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeEntries(&buf, entries, "text"))
	assert.Contains(t, buf.String(), "CreatePerson failed: person already exists")
	assert.Contains(t, buf.String(), "cli:root")

	buf.Reset()
	require.NoError(t, writeEntries(&buf, entries, "json"))
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestShowConfiguration(t *testing.T) {
	t.Setenv("ACTS_CONFIG_PATH", t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, showConfiguration(&buf, cfg, "json"))
	assert.True(t, json.Valid(buf.Bytes()))

	buf.Reset()
	require.NoError(t, showConfiguration(&buf, cfg, "text"))
	assert.Contains(t, buf.String(), "log_level")

	assert.Error(t, showConfiguration(&buf, cfg, "yaml"))
}

func TestWaitForServer(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	require.NoError(t, waitForServer(ts.URL, 5, time.Millisecond))
	assert.Equal(t, 3, calls)

	calls = -100
	assert.Error(t, waitForServer(ts.URL, 2, time.Millisecond))
}

func TestRegisterHandlers(t *testing.T) {
	m := mediator.New()
	require.NoError(t, registerHandlers(m, nil, nil, 0))
	assert.Contains(t, m.Registered(), "CreateAstronautDuty")
	assert.Contains(t, m.Registered(), "GetPeople")

	// A second registration fails, and newApp closes its pools on that path.
	assert.ErrorIs(t, registerHandlers(m, nil, nil, 0), mediator.ErrDuplicateHandler)
}

func TestLoadRosterFile_DryRun(t *testing.T) {
	m := mediator.New()
	require.NoError(t, registerHandlers(m, nil, nil, 0))

	file := filepath.Join(t.TempDir(), "roster.yml")
	content := "people:\n  - name: Jane Roe\n    duties:\n      - rank: \"\"\n        title: PILOT\n        start: 2020-01-01\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	var out bytes.Buffer
	loader := roster.NewLoader(m, zerolog.Nop()).WithDryRun(true)
	err := loadRosterFile(context.Background(), &out, loader, file)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rank is required")
	assert.Equal(t, "Dry run: would create 1 people, assign 0 duties, failed 1\n", out.String())
}
