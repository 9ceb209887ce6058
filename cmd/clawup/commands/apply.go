package commands

import (
	"github.com/spf13/cobra"

	"github.com/openclaw/clawup/cmd/clawup/handlers"
)

// Apply returns the command that provisions the host it runs on.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: clawup.yaml if present)
//	--yes, -y:    Skip the confirmation prompt
//	--plain:      Plain log output instead of the interactive dashboard
//
// Environment variables:
//
//	ANTHROPIC_API_KEY:  Anthropic API key (required)
//	OPENROUTER_API_KEY: OpenRouter API key (required)
func Apply() *cobra.Command {
	var (
		configPath string
		assumeYes  bool
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Provision this host into an OpenClaw gateway",
		Long: `Provision the host clawup runs on.

Six phases run in order: system update, dependency install, service
account, firewall, application deploy and service registration. When the
system update leaves a reboot pending, the host reboots and the run
resumes automatically on the next boot.

Both provider API keys must be exported before running. Without a config
file the built-in defaults are used.

Examples:
  # Provision using clawup.yaml in the current directory
  clawup apply

  # Provision with a specific config, no confirmation prompt
  clawup apply -c production.yaml --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath, assumeYes, plain)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: clawup.yaml)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain log output instead of the dashboard")

	return cmd
}
