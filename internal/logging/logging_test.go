package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jask/pixed/internal/config"
)

func TestOpenWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "pixed.log")
	log, closer, err := Open(config.LogConfig{Level: "info", File: path})
	require.NoError(t, err)

	session, ok := log.Data["session"].(string)
	require.True(t, ok)
	_, err = uuid.Parse(session)
	require.NoError(t, err)

	log.Debug("hidden")
	log.WithField("picture", "frog").Info("snapshot imported")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "snapshot imported")
	require.Contains(t, string(data), "picture=frog")
	require.Contains(t, string(data), "session="+session)
	require.NotContains(t, string(data), "hidden")
}

func TestOpenWithoutFile(t *testing.T) {
	log, closer, err := Open(config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	log.Info("discarded")
	require.NoError(t, closer.Close())
}

func TestOpenBadLevel(t *testing.T) {
	_, _, err := Open(config.LogConfig{Level: "loud"})
	require.Error(t, err)
}
