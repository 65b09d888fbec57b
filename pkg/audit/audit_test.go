package audit

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.New(&buf))

	err := logger.Record(context.Background(), Entry{
		Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Level:     LevelError,
		Message:   "CreateAstronautDuty failed",
		Exception: "duty already exists",
		Source:    "CreateAstronautDuty",
		RequestID: "req-9",
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		`"level":"error"`,
		`"audit":"error"`,
		`"source":"CreateAstronautDuty"`,
		`"exception":"duty already exists"`,
		`"request_id":"req-9"`,
		`"message":"CreateAstronautDuty failed"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output %s", want, output)
		}
	}
	if strings.Contains(output, "user_id") {
		t.Error("empty user id should be omitted")
	}
}

func TestLoggerSuccessIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.New(&buf))

	_ = logger.Record(context.Background(), Entry{Level: LevelSuccess, Message: "ok", Source: "CreatePerson"})

	if !strings.Contains(buf.String(), `"level":"info"`) {
		t.Errorf("success entries should log at info level: %s", buf.String())
	}
}

type captureSink struct {
	entries []Entry
	err     error
}

func (c *captureSink) Record(_ context.Context, e Entry) error {
	c.entries = append(c.entries, e)
	return c.err
}

func TestRecorderFansOut(t *testing.T) {
	a := &captureSink{}
	b := &captureSink{}
	rec := NewRecorder(zerolog.Nop(), a, b)

	if err := rec.Record(context.Background(), Entry{Level: LevelInfo, Message: "GetPeople succeeded"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if len(a.entries) != 1 || len(b.entries) != 1 {
		t.Fatalf("expected one entry per sink, got %d and %d", len(a.entries), len(b.entries))
	}
	if a.entries[0].Timestamp.IsZero() {
		t.Error("Recorder should stamp entries without a timestamp")
	}
}

func TestRecorderSwallowsSinkErrors(t *testing.T) {
	var buf bytes.Buffer
	failing := &captureSink{err: errors.New("db down")}
	ok := &captureSink{}
	rec := NewRecorder(zerolog.New(&buf), failing, ok)

	if err := rec.Record(context.Background(), Entry{Message: "x", Source: "GetPeople"}); err != nil {
		t.Errorf("Record() error = %v, want nil", err)
	}
	if len(ok.entries) != 1 {
		t.Error("later sinks should still receive the entry")
	}
	if !strings.Contains(buf.String(), "db down") {
		t.Errorf("sink failure should be logged: %s", buf.String())
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"info", LevelInfo, false},
		{"error", LevelError, false},
		{"SUCCESS", LevelSuccess, false},
		{"warning", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := LevelString(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LevelString(%q) error = %v", tt.in, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("LevelString(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
