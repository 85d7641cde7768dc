package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/adapters/driven/config/file"
)

func setupTestSettings(t *testing.T) func() {
	t.Helper()
	store, err := file.NewStore(t.TempDir())
	require.NoError(t, err)

	oldStore := settingsStore
	settingsStore = store
	return func() {
		settingsStore = oldStore
	}
}

func TestSettingsShowCmd_PrintsDefaults(t *testing.T) {
	cleanup := setupTestSettings(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "[Embedding]")
	assert.Contains(t, buf.String(), "ollama")
	assert.Contains(t, buf.String(), "Backend: memory")
	assert.Contains(t, buf.String(), "Top K: 10")
	assert.Contains(t, buf.String(), "vector=0.70 keyword=0.30")
	assert.Contains(t, buf.String(), "Configuration is valid")
}

func TestSettingsShowCmd_MasksAPIKey(t *testing.T) {
	cleanup := setupTestSettings(t)
	defer cleanup()

	settings := settingsStore.Settings()
	settings.Embedding.Provider = "openai"
	settings.Embedding.APIKey = "sk-abcdefghijklmnop"
	require.NoError(t, settingsStore.Update(settings))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.NotContains(t, buf.String(), "sk-abcdefghijklmnop")
	assert.Contains(t, buf.String(), "sk-a...mnop")
}

func TestSettingsPathCmd_PrintsLocation(t *testing.T) {
	cleanup := setupTestSettings(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "path"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "config.toml")
}

func TestSettingsCmd_StoreNotConfigured(t *testing.T) {
	oldStore := settingsStore
	settingsStore = nil
	defer func() {
		settingsStore = oldStore
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "settings store not configured")
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", maskAPIKey("abcdefgh-long-key-wxyz"))
}
