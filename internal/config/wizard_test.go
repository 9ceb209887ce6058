package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardResultToConfig(t *testing.T) {
	t.Parallel()
	result := &WizardResult{
		PrimaryModel:  "claude-opus-4-1",
		FallbackModel: " deepseek/deepseek-chat ",
		Port:          "9000",
		LogLevel:      "debug",
		InstallDir:    "/srv/openclaw",
		Branch:        "release",
		ServiceUser:   "claw",
	}

	cfg := result.ToConfig()
	assert.Equal(t, "claude-opus-4-1", cfg.Provider.PrimaryModel)
	assert.Equal(t, "deepseek/deepseek-chat", cfg.Provider.FallbackModel)
	assert.Equal(t, 9000, cfg.Gateway.Port)
	assert.Equal(t, "debug", cfg.Gateway.LogLevel)
	assert.Equal(t, "/srv/openclaw", cfg.Install.Dir)
	assert.Equal(t, "release", cfg.Install.Branch)
	assert.Equal(t, "claw", cfg.Install.ServiceUser)

	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultPrimaryProvider, cfg.Provider.Primary)
	assert.Equal(t, DefaultRepoURL, cfg.Install.Repo)

	assert.NoError(t, cfg.Validate())
}

func TestWizardValidators(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateWizardPort("18789"))
	assert.Error(t, validateWizardPort("not-a-port"))
	assert.Error(t, validateWizardPort("0"))
	assert.Error(t, validateWizardPort("22"))
	assert.Error(t, validateWizardPort("70000"))

	assert.NoError(t, validateWizardDir("/opt/openclaw"))
	assert.Error(t, validateWizardDir("relative/path"))

	assert.NoError(t, validateWizardServiceUser("openclaw"))
	assert.Error(t, validateWizardServiceUser("Claw!"))

	assert.NoError(t, validateNonEmpty("branch")("main"))
	assert.Error(t, validateNonEmpty("branch")("   "))
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "clawup.yaml")

	cfg := Default()
	cfg.Gateway.Port = 9000
	require.NoError(t, WriteYAML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWriteYAMLRejectsInvalid(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Gateway.Port = 22

	err := WriteYAML(cfg, filepath.Join(t.TempDir(), "clawup.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to write")
}
