package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		log, err := NewLogger(level, false)
		require.NoError(t, err, level)
		assert.NotNil(t, log.GetSink(), level)
	}

	log, err := NewLogger("debug", true)
	require.NoError(t, err)
	assert.True(t, log.V(1).Enabled())
}

func TestNewLoggerBadLevel(t *testing.T) {
	_, err := NewLogger("verbose", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized log level")
}
