package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, closer, err := Setup("debug", path)
	require.NoError(t, err)

	named := Named(logger, "orders")
	named.Info().Int64("order_id", 7).Msg("order created")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(raw), &line))
	assert.Equal(t, "orders", line["logger"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "order created", line["message"])
	assert.EqualValues(t, 7, line["order_id"])
	assert.Contains(t, line, "time")
}

func TestSetup_UnknownLevelDefaultsToInfo(t *testing.T) {
	logger, closer, err := Setup("chatty", "")
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
