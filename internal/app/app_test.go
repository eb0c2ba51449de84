package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavu/internal/config"
	"tavu/internal/credential"
	"tavu/internal/menu"
	"tavu/internal/prefs"
)

func TestResolveKeyPrefersEnvironment(t *testing.T) {
	ui := &menu.Script{}
	cfg := config.Config{APIKey: "env-key", KeyFile: filepath.Join(t.TempDir(), "credentials")}

	key, err := resolveKey(cfg, ui)

	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
	assert.Empty(t, ui.Prompts)
}

func TestResolveKeyReadsKeyFile(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "credentials")
	require.NoError(t, os.WriteFile(keyFile, []byte("file-key\n"), 0o600))

	ui := &menu.Script{}
	key, err := resolveKey(config.Config{KeyFile: keyFile}, ui)

	require.NoError(t, err)
	assert.Equal(t, "file-key", key)
	assert.Empty(t, ui.Prompts)
}

func TestResolveKeyPromptsAndPersists(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "credentials")
	ui := (&menu.Script{}).Type("  typed-key  ").Answer(true)

	key, err := resolveKey(config.Config{KeyFile: keyFile}, ui)

	require.NoError(t, err)
	assert.Equal(t, "typed-key", key)

	saved, err := credential.Load(keyFile)
	require.NoError(t, err)
	assert.Equal(t, "typed-key", saved)
}

func TestResolveKeyPromptsWithoutPersisting(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "credentials")
	ui := (&menu.Script{}).Type("typed-key").Answer(false)

	key, err := resolveKey(config.Config{KeyFile: keyFile}, ui)

	require.NoError(t, err)
	assert.Equal(t, "typed-key", key)

	_, statErr := os.Stat(keyFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPageSizeConfigOverridesPrefs(t *testing.T) {
	assert.Equal(t, 10, pageSize(config.Config{}, prefs.Prefs{PageSize: 10}))
	assert.Equal(t, 25, pageSize(config.Config{PageSize: 25}, prefs.Prefs{PageSize: 10}))
}

func TestResolveKeyRejectsEmptyInput(t *testing.T) {
	ui := (&menu.Script{}).Type("   ")

	_, err := resolveKey(config.Config{KeyFile: filepath.Join(t.TempDir(), "credentials")}, ui)

	assert.Error(t, err)
}
