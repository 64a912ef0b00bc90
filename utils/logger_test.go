package utils

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// Test SetDebug
func TestSetDebug(t *testing.T) {
	t.Cleanup(func() { SetDebug(false) })

	SetDebug(true)
	require.True(t, log.IsLevelEnabled(log.DebugLevel))

	SetDebug(false)
	require.False(t, log.IsLevelEnabled(log.DebugLevel))
	require.True(t, log.IsLevelEnabled(log.InfoLevel))
}

// Test that the logging helpers carry their fields through
func TestLogHelpersCarryFields(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	Info("listing created", map[string]any{"slug": "oak-chair"})
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, log.InfoLevel, entry.Level)
	require.Equal(t, "listing created", entry.Message)
	require.Equal(t, "oak-chair", entry.Data["slug"])

	Warn("listing missing", map[string]any{"slug": "ghost"})
	entry = hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, log.WarnLevel, entry.Level)

	Error("store unreachable", map[string]any{"error": "timeout"})
	entry = hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, log.ErrorLevel, entry.Level)
	require.Equal(t, "timeout", entry.Data["error"])
}
