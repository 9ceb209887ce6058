package commands

import (
	"github.com/spf13/cobra"

	"github.com/openclaw/clawup/cmd/clawup/handlers"
)

// Doctor returns the command that diagnoses the provisioning state of
// the host.
func Doctor() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the provisioning state of this host",
		Long: `Inspect the host and report provisioning state.

Checks the required host tools, the reboot marker and crontab residue,
the service account, the install directory and the systemd unit. Exits
non-zero when a required check fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: clawup.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output machine-readable JSON")

	return cmd
}
