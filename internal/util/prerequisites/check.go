// Package prerequisites checks that the host tools a provisioning run
// depends on are present before any of them is invoked.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool is a binary the provisioner shells out to.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string
}

// HostTools returns the tools an on-host `clawup apply` run needs.
// ufw is installed by the dependency phase, so it is only advisory.
func HostTools() []Tool {
	return []Tool{
		{Name: "apt-get", Required: true, Description: "Installs system packages and upgrades the host"},
		{Name: "systemctl", Required: true, Description: "Registers and starts the gateway service, reboots the host"},
		{Name: "crontab", Required: true, Description: "Schedules the resume entry across reboots"},
		{Name: "useradd", Required: true, Description: "Creates the service account"},
		{Name: "sudo", Required: true, Description: "Runs npm install as the service account"},
		{Name: "git", Required: false, Description: "Clones the application repository (installed if missing)"},
		{Name: "ufw", Required: false, Description: "Configures the firewall (installed if missing)"},
		{Name: "node", Required: false, Description: "Runs the gateway (installed if missing)"},
	}
}

// CheckResult holds the outcome for a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults holds the outcome for a set of tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors reports whether any required tool is missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error listing the missing required tools, or nil.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, tool.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check looks up each tool in PATH.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckHost checks the default host tool set.
func CheckHost() *CheckResults {
	return Check(HostTools())
}
