package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerToFormats(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "users-api", "production")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	assert.Equal(t, "users-api", line["app"])

	buf.Reset()
	dev := NewLoggerTo(&buf, "users-api", "development")
	assert.Equal(t, logrus.DebugLevel, dev.GetLevel())
	assert.Contains(t, buf.String(), "logger initialized")
}

func TestLogErrorAddsError(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "users-api", "production")
	buf.Reset()

	LogError(l, "store down", errors.New("boom"), logrus.Fields{"request_id": "r1"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "r1", line["request_id"])

	assert.NotPanics(t, func() { LogError(nil, "x", nil, nil) })
	assert.NotPanics(t, func() { LogInfo(nil, "x", nil) })
}
