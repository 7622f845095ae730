package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{"off", LevelOff, false, false},
		{"normal", LevelNormal, false, true},
		{"verbose", LevelVerbose, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)

			log.Debug("debug %d", 1)
			assert.Equal(t, tt.wantDebug, strings.Contains(buf.String(), "debug 1"))

			log.Info("info %d", 2)
			assert.Equal(t, tt.wantInfo, strings.Contains(buf.String(), "info 2"))
		})
	}
}

func TestSetLevelAtRuntime(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelOff, &buf)
	log.Warn("hidden")
	assert.Empty(t, buf.String())

	log.SetLevel(LevelNormal)
	assert.Equal(t, LevelNormal, log.GetLevel())
	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestJSONFormatCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelNormal, &buf, WithFormat(FormatJSON)).With("engine")
	log.Info("computed %s", "batch")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "engine", line["component"])
	assert.Equal(t, "computed batch", line["message"])
	assert.Equal(t, "info", line["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelOff, ParseLevel("off"))
	assert.Equal(t, LevelVerbose, ParseLevel("verbose"))
	assert.Equal(t, LevelNormal, ParseLevel("normal"))
	assert.Equal(t, LevelNormal, ParseLevel("bogus"))
}
