package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_ToCharmlogLevel(t *testing.T) {
	assert.Equal(t, charmlog.DebugLevel, DebugLevel.ToCharmlogLevel())
	assert.Equal(t, charmlog.WarnLevel, Level("WARN").ToCharmlogLevel())
	assert.Equal(t, charmlog.ErrorLevel, ErrorLevel.ToCharmlogLevel())
	assert.Equal(t, charmlog.InfoLevel, Level("verbose").ToCharmlogLevel())
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: WarnLevel, Output: &buf})

	l.Info("hidden")
	l.Warn("shown", "sheet", "Data")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "sheet=Data")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: InfoLevel, Output: &buf, JSON: true})

	l.Info("translation finished", "units", 3)

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "translation finished", entry["msg"])
	assert.EqualValues(t, 3, entry["units"])
}

func TestNew_NilConfig(t *testing.T) {
	assert.NotNil(t, New(nil))
	assert.NotNil(t, Discard())
}
