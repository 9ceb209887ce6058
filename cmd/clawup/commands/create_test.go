package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_Flags(t *testing.T) {
	cmd := Create()

	require.NotNil(t, cmd)
	assert.Equal(t, "create", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	tests := []struct {
		name     string
		defValue string
	}{
		{"name", "openclaw"},
		{"type", "cx22"},
		{"image", "ubuntu-24.04"},
		{"location", "fsn1"},
		{"binary-url", ""},
		{"ssh-key", ""},
	}
	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, "flag %s should exist", tt.name)
		assert.Equal(t, tt.defValue, flag.DefValue, "flag %s default", tt.name)
	}
}

func TestDestroy_Flags(t *testing.T) {
	cmd := Destroy()

	require.NotNil(t, cmd)
	assert.Equal(t, "destroy", cmd.Use)

	for _, name := range []string{"config", "server", "purge-user", "force"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestVersionAndCompletion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	version := Version()
	require.NotNil(t, version)
	assert.Equal(t, "version", version.Use)

	completion := Completion()
	require.NotNil(t, completion)
	assert.Contains(t, completion.ValidArgs, "bash")
	assert.Contains(t, completion.ValidArgs, "zsh")
}
