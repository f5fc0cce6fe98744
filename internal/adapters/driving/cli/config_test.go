package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
)

func TestConfigCmd_Subcommands(t *testing.T) {
	names := make([]string, 0, len(configCmd.Commands()))
	for _, c := range configCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"path", "init", "show", "set"}, names)
}

func TestConfigPathCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("config", "path")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/loaderhub/config.toml\n", out)
}

func TestConfigInitCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("config", "init")

	require.NoError(t, err)
	assert.True(t, testSettings.initCalled)
	assert.Contains(t, out, "Settings written to /tmp/loaderhub/config.toml")
}

func TestConfigInitCmd_Error(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	testSettings.err = errors.New("read-only")

	_, err := executeCommand("config", "init")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialise settings")
}

func TestConfigShowCmd(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		out, err := executeCommand("config", "show")

		require.NoError(t, err)
		assert.Contains(t, out, "Config file: /tmp/loaderhub/config.toml")
		assert.Contains(t, out, "token:               (not set)")
		assert.Contains(t, out, "https://api.github.com/")
		assert.Contains(t, out, "https://github.com")
		assert.Contains(t, out, "(default)")
		assert.Contains(t, out, "(unlimited)")
	})

	t.Run("configured values mask the token", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		testSettings.settings = domain.Settings{GitHub: domain.GitHubSettings{
			Token:             "ghp_abcdefghijklmnop",
			APIBaseURL:        "https://ghe.example.com/api/v3/",
			BufferSize:        25,
			RequestsPerSecond: 1.5,
		}}

		out, err := executeCommand("config", "show")

		require.NoError(t, err)
		assert.Contains(t, out, "ghp_...mnop")
		assert.NotContains(t, out, "ghp_abcdefghijklmnop")
		assert.Contains(t, out, "https://ghe.example.com/api/v3/")
		assert.Contains(t, out, "buffer_size:         25")
		assert.Contains(t, out, "requests_per_second: 1.5")
	})

	t.Run("settings error", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		testSettings.err = errors.New("bad toml")

		_, err := executeCommand("config", "show")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read settings")
	})
}

func TestConfigSetCmd(t *testing.T) {
	t.Run("sets a value", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		out, err := executeCommand("config", "set", "github.buffer_size", "20")

		require.NoError(t, err)
		assert.Equal(t, "20", testSettings.set["github.buffer_size"])
		assert.Contains(t, out, "github.buffer_size = 20")
	})

	t.Run("masks tokens in output", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		out, err := executeCommand("config", "set", "github.token", "ghp_abcdefghijklmnop")

		require.NoError(t, err)
		assert.Equal(t, "ghp_abcdefghijklmnop", testSettings.set["github.token"])
		assert.Contains(t, out, "github.token = ghp_...mnop")
	})

	t.Run("rejected key lists valid keys", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		testSettings.setErr = domain.ErrInvalidInput

		_, err := executeCommand("config", "set", "github.nope", "x")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "keys: github.token")
	})

	t.Run("requires key and value", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		_, err := executeCommand("config", "set", "github.token")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "accepts 2 arg(s)")
	})
}

func TestConfigCmd_NoSettingsService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	settingsService = nil

	for _, args := range [][]string{
		{"config", "path"},
		{"config", "init"},
		{"config", "show"},
		{"config", "set", "github.token", "x"},
	} {
		_, err := executeCommand(args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "settings service not configured")
	}
}
