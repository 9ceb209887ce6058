package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// serviceUserRegex validates the account name format accepted by useradd:
// 1-32 lowercase alphanumeric, hyphens or underscores, starting with a letter
// or underscore.
var serviceUserRegex = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)

// ValidLogLevels contains the log levels understood by the OpenClaw gateway.
var ValidLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for common errors and returns a
// detailed error if validation fails.
func (c *Config) Validate() error {
	if c.Provider.Primary == "" {
		return fmt.Errorf("provider.primary is required")
	}
	if c.Provider.PrimaryModel == "" {
		return fmt.Errorf("provider.primary_model is required")
	}
	if c.Provider.Fallback == "" {
		return fmt.Errorf("provider.fallback is required")
	}
	if c.Provider.FallbackModel == "" {
		return fmt.Errorf("provider.fallback_model is required")
	}

	if c.Gateway.Port < 1 || c.Gateway.Port > 65535 {
		return fmt.Errorf("gateway.port %d is invalid: expected 1-65535", c.Gateway.Port)
	}
	if c.Gateway.Port == 22 {
		return fmt.Errorf("gateway.port 22 conflicts with SSH")
	}
	if !ValidLogLevels[c.Gateway.LogLevel] {
		return fmt.Errorf("gateway.log_level %q is invalid: expected debug, info, warn or error", c.Gateway.LogLevel)
	}

	if !filepath.IsAbs(c.Install.Dir) {
		return fmt.Errorf("install.dir %q must be an absolute path", c.Install.Dir)
	}
	if c.Install.Repo == "" {
		return fmt.Errorf("install.repo is required")
	}
	if !strings.HasPrefix(c.Install.Repo, "https://") && !strings.HasPrefix(c.Install.Repo, "git@") {
		return fmt.Errorf("install.repo %q is invalid: expected an https or ssh git URL", c.Install.Repo)
	}
	if c.Install.Branch == "" {
		return fmt.Errorf("install.branch is required")
	}
	if !serviceUserRegex.MatchString(c.Install.ServiceUser) {
		return fmt.Errorf("install.service_user %q is invalid: expected 1-32 chars matching %s", c.Install.ServiceUser, serviceUserRegex.String())
	}

	return nil
}
