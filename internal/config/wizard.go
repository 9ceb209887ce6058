package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	PrimaryModel  string
	FallbackModel string
	Port          string
	LogLevel      string
	InstallDir    string
	Branch        string
	ServiceUser   string
}

// RunWizard runs the interactive configuration wizard.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		// Defaults
		PrimaryModel:  DefaultPrimaryModel,
		FallbackModel: DefaultFallbackModel,
		Port:          strconv.Itoa(DefaultGatewayPort),
		LogLevel:      DefaultLogLevel,
		InstallDir:    DefaultInstallDir,
		Branch:        DefaultBranch,
		ServiceUser:   DefaultServiceUser,
	}

	form := huh.NewForm(
		// Models
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Primary model").
				Description("Served through the Anthropic API").
				Options(
					huh.NewOption("Claude Sonnet 4.5 (recommended)", "claude-sonnet-4-5"),
					huh.NewOption("Claude Opus 4.1", "claude-opus-4-1"),
					huh.NewOption("Claude Haiku 4.5", "claude-haiku-4-5"),
				).
				Value(&result.PrimaryModel),

			huh.NewInput().
				Title("Fallback model").
				Description("OpenRouter model used when the primary is unavailable").
				Placeholder(DefaultFallbackModel).
				Value(&result.FallbackModel).
				Validate(validateNonEmpty("fallback model")),
		),

		// Gateway
		huh.NewGroup(
			huh.NewInput().
				Title("Gateway port").
				Description("TCP port the gateway listens on").
				Placeholder(strconv.Itoa(DefaultGatewayPort)).
				Value(&result.Port).
				Validate(validateWizardPort),

			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("debug", "debug"),
					huh.NewOption("info", "info"),
					huh.NewOption("warn", "warn"),
					huh.NewOption("error", "error"),
				).
				Value(&result.LogLevel),
		),

		// Install target
		huh.NewGroup(
			huh.NewInput().
				Title("Install directory").
				Placeholder(DefaultInstallDir).
				Value(&result.InstallDir).
				Validate(validateWizardDir),

			huh.NewInput().
				Title("Branch").
				Description("Git branch of the OpenClaw repository to deploy").
				Placeholder(DefaultBranch).
				Value(&result.Branch).
				Validate(validateNonEmpty("branch")),

			huh.NewInput().
				Title("Service user").
				Description("System account the gateway runs as").
				Placeholder(DefaultServiceUser).
				Value(&result.ServiceUser).
				Validate(validateWizardServiceUser),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config.
func (r *WizardResult) ToConfig() *Config {
	port, _ := strconv.Atoi(strings.TrimSpace(r.Port))
	cfg := Default()
	cfg.Provider.PrimaryModel = r.PrimaryModel
	cfg.Provider.FallbackModel = strings.TrimSpace(r.FallbackModel)
	cfg.Gateway.Port = port
	cfg.Gateway.LogLevel = r.LogLevel
	cfg.Install.Dir = strings.TrimSpace(r.InstallDir)
	cfg.Install.Branch = strings.TrimSpace(r.Branch)
	cfg.Install.ServiceUser = strings.TrimSpace(r.ServiceUser)
	return cfg
}

func validateNonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	}
}

func validateWizardPort(s string) error {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be 1-65535")
	}
	if port == 22 {
		return fmt.Errorf("port 22 conflicts with SSH")
	}
	return nil
}

func validateWizardDir(s string) error {
	if !strings.HasPrefix(strings.TrimSpace(s), "/") {
		return fmt.Errorf("install directory must be an absolute path")
	}
	return nil
}

func validateWizardServiceUser(s string) error {
	if !serviceUserRegex.MatchString(strings.TrimSpace(s)) {
		return fmt.Errorf("invalid account name")
	}
	return nil
}
