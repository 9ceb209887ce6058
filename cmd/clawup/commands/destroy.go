package commands

import (
	"github.com/spf13/cobra"

	"github.com/openclaw/clawup/cmd/clawup/handlers"
)

// Destroy returns the command that reverses a provisioning run, either
// on the local host or by deleting a Hetzner Cloud server.
func Destroy() *cobra.Command {
	opts := handlers.DestroyOptions{}

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Remove OpenClaw from this host, or delete a cloud server",
		Long: `Reverse a provisioning run on the local host.

The systemd unit is stopped, disabled and removed, the gateway firewall
rule is deleted and the install directory is wiped. Installed packages
and the OpenSSH firewall rule are never touched. With --purge-user the
service account is deleted as well.

With --server, the named Hetzner Cloud server created by clawup create
is deleted instead, together with the SSH key clawup uploaded for it
(only keys carrying the managed-by=clawup label are removed).

Examples:
  clawup destroy
  clawup destroy --purge-user
  clawup destroy --server openclaw-1

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: clawup.yaml)")
	cmd.Flags().StringVar(&opts.ServerName, "server", "", "Delete this Hetzner Cloud server instead of tearing down locally")
	cmd.Flags().BoolVar(&opts.PurgeUser, "purge-user", false, "Also delete the service account")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Skip the confirmation prompt")

	return cmd
}
