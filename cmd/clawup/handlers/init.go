package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/openclaw/clawup/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.WriteYAML
)

// Init runs the configuration wizard and writes the result to a file.
// An existing file is refused unless force is set.
func Init(ctx context.Context, outputPath string, force bool) error {
	if fileExists(outputPath) {
		if !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", outputPath)
		}
		fmt.Printf("Warning: %s will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("clawup - OpenClaw VPS provisioner")
	fmt.Println("=================================")
	fmt.Println()
	fmt.Println("This wizard creates a provisioning configuration with sensible defaults.")
	fmt.Println("Every value can be edited in the generated YAML afterwards.")
	fmt.Println()
}

// printInitSuccess prints the summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Summary")
	fmt.Println("-------")
	fmt.Printf("  Primary:   %s / %s\n", cfg.Provider.Primary, cfg.Provider.PrimaryModel)
	fmt.Printf("  Fallback:  %s / %s\n", cfg.Provider.Fallback, cfg.Provider.FallbackModel)
	fmt.Printf("  Gateway:   port %d, log level %s\n", cfg.Gateway.Port, cfg.Gateway.LogLevel)
	fmt.Printf("  Install:   %s (%s@%s) as %s\n", cfg.Install.Dir, cfg.Install.Repo, cfg.Install.Branch, cfg.Install.ServiceUser)
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Export your provider API keys:")
	fmt.Printf("     export %s=<your-key>\n", config.AnthropicKeyEnv)
	fmt.Printf("     export %s=<your-key>\n", config.OpenRouterKeyEnv)
	fmt.Println()
	fmt.Println("  2. Provision the host:")
	fmt.Printf("     clawup apply -c %s\n", outputPath)
	fmt.Println()
	fmt.Println("  Or create a fresh Hetzner server with everything on it:")
	fmt.Printf("     clawup create -c %s --name openclaw\n", outputPath)
	fmt.Println()
}
