package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
	assert.Equal(t, "set", settingsSetCmd.Use)
	assert.Equal(t, "show", settingsShowCmd.Use)
}

func TestSettingsShow_StockDefaults(t *testing.T) {
	cfgDir := t.TempDir()

	out, err := execute(t, "settings", "--config", cfgDir)

	require.NoError(t, err)
	assert.Contains(t, out, "Mode:           literal")
	assert.Contains(t, out, "Direction:      down")
	assert.Contains(t, out, "Where:          current")
	assert.Contains(t, out, "Wrap:           true")
	assert.Contains(t, out, cfgDir)
}

func TestSettingsSet_RoundTrip(t *testing.T) {
	cfgDir := t.TempDir()

	out, err := execute(t, "settings", "set",
		"--mode", "regex", "--wrap=false", "--config", cfgDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Defaults saved.")

	out, err = execute(t, "settings", "show", "--config", cfgDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Mode:           regex")
	assert.Contains(t, out, "Wrap:           false")
	assert.Contains(t, out, "Direction:      down")
}

func TestSettingsSet_RejectsUnknownScope(t *testing.T) {
	_, err := execute(t, "settings", "set",
		"--where", "everywhere", "--config", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scope")
}

func TestSettingsSet_FunctionModeIsSettable(t *testing.T) {
	cfgDir := t.TempDir()

	_, err := execute(t, "settings", "set", "--mode", "function", "--config", cfgDir)
	require.NoError(t, err)

	out, err := execute(t, "settings", "show", "--config", cfgDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Mode:           function")
}
