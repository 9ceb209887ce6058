package commands

import (
	"github.com/spf13/cobra"

	"github.com/openclaw/clawup/cmd/clawup/handlers"
	"github.com/openclaw/clawup/internal/config"
)

// Init returns the command that creates a configuration file through an
// interactive wizard.
func Init() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		Long: `Create a clawup configuration file.

The wizard asks a handful of questions (models, port, install target)
and writes a fully expanded YAML file. Every value can be edited
afterwards. An existing file is only overwritten with --force.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFile, "Where to write the configuration file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}
