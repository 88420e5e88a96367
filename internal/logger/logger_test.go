package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		log, err := New(mode, false)
		require.NoError(t, err, mode)
		require.NotNil(t, log)
	}
}

func TestVerboseEnablesDebug(t *testing.T) {
	log, err := New("prod", true)
	require.NoError(t, err)
	assert.True(t, log.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel))

	log, err = New("prod", false)
	require.NoError(t, err)
	assert.False(t, log.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel))
}

func TestNamedAndWith(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := &Logger{SugaredLogger: zap.New(core).Sugar()}

	log.Named("planner").With("itinerary", "it-1").Info("day planned", "day", 2)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "planner", entries[0].LoggerName)
	assert.Equal(t, "day planned", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "it-1", ctx["itinerary"])
	assert.EqualValues(t, 2, ctx["day"])
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Info("ignored", "k", "v")
	log.Sync()
}
