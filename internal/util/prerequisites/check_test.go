package prerequisites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFindsToolInPath(t *testing.T) {
	// sh is part of every POSIX base system this provisioner targets.
	results := Check([]Tool{{Name: "sh", Required: true, Description: "shell"}})

	require.Len(t, results.Results, 1)
	assert.True(t, results.Results[0].Found)
	assert.NotEmpty(t, results.Results[0].Path)
	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
}

func TestCheckMissingRequiredTool(t *testing.T) {
	results := Check([]Tool{{Name: "nonexistent-tool-xyz123", Required: true}})

	require.Len(t, results.Missing, 1)
	assert.True(t, results.HasErrors())
	assert.ErrorContains(t, results.Error(), "nonexistent-tool-xyz123")
}

func TestCheckMissingOptionalTool(t *testing.T) {
	results := Check([]Tool{{Name: "nonexistent-tool-xyz123", Required: false}})

	require.Len(t, results.Missing, 1)
	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
}

func TestHostTools(t *testing.T) {
	tools := HostTools()
	require.NotEmpty(t, tools)

	byName := make(map[string]Tool, len(tools))
	for _, tool := range tools {
		byName[tool.Name] = tool
	}

	for _, name := range []string{"apt-get", "systemctl", "crontab", "useradd"} {
		tool, ok := byName[name]
		require.True(t, ok, "expected %s in host tools", name)
		assert.True(t, tool.Required, "%s should be required", name)
	}

	// Installed by the dependency phase, so missing at start is fine.
	for _, name := range []string{"git", "ufw", "node"} {
		tool, ok := byName[name]
		require.True(t, ok, "expected %s in host tools", name)
		assert.False(t, tool.Required, "%s should be optional", name)
	}
}
