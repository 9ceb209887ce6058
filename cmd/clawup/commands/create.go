package commands

import (
	"github.com/spf13/cobra"

	"github.com/openclaw/clawup/cmd/clawup/handlers"
)

// Create returns the command that creates a Hetzner Cloud server and
// provisions it unattended via cloud-init.
//
// Environment variables:
//
//	HCLOUD_TOKEN:       Hetzner Cloud API token (required)
//	ANTHROPIC_API_KEY:  Anthropic API key (required)
//	OPENROUTER_API_KEY: OpenRouter API key (required)
func Create() *cobra.Command {
	opts := handlers.CreateOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Hetzner Cloud server running OpenClaw",
		Long: `Create a new Hetzner Cloud server and provision it unattended.

An ed25519 SSH key is generated (or reused), the server is created with
a cloud-init payload that fetches clawup and runs apply on first boot,
and the command waits until the server is up.

Examples:
  clawup create --name openclaw-1
  clawup create --name openclaw-1 --type cx32 --location fsn1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Create(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: clawup.yaml)")
	cmd.Flags().StringVar(&opts.Name, "name", "openclaw", "Server name")
	cmd.Flags().StringVar(&opts.ServerType, "type", "cx22", "Hetzner server type")
	cmd.Flags().StringVar(&opts.Image, "image", "ubuntu-24.04", "OS image")
	cmd.Flags().StringVar(&opts.Location, "location", "fsn1", "Hetzner location")
	cmd.Flags().StringVar(&opts.BinaryURL, "binary-url", "", "Override the clawup binary download URL")
	cmd.Flags().StringVar(&opts.SSHKeyPath, "ssh-key", "", "Write the generated private key here (default: ./<name>_ed25519)")

	return cmd
}
