package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf})

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"message":"kept"`)
	assert.Contains(t, buf.String(), `"service":"acts"`)
}

func TestInitOnlyOnce(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	log := Get()
	log.Info().Msg("hello")
	assert.Contains(t, first.String(), "hello")
	assert.Empty(t, second.String())
}

func TestGetBeforeInit(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	log := Get()
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
