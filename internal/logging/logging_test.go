package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json"}, &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("component", "header").Msg("assembled")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var event map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "header", event["component"])
	assert.Equal(t, "assembled", event["message"])
	assert.Contains(t, event, "time")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "loud"}, &buf)

	logger.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
	logger.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Format: "pretty"}, &buf)

	logger.Debug().Str("tier", "gold").Msg("profile generated")
	out := buf.String()
	assert.Contains(t, out, "profile generated")
	assert.Contains(t, out, "tier=gold")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNew_ReportCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", ReportCaller: true}, &buf)

	logger.Info().Msg("with caller")
	assert.Contains(t, buf.String(), "logging_test.go")
}
