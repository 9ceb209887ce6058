// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated
// to handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the clawup CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clawup",
		Short: "Provision an Ubuntu VPS into a running OpenClaw gateway",
	}

	// Host provisioning
	cmd.AddCommand(Init())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Doctor())

	// Hetzner Cloud lifecycle
	cmd.AddCommand(Create())
	cmd.AddCommand(Destroy())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
