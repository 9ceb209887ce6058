package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openclaw/clawup/internal/config"
	"github.com/openclaw/clawup/internal/provisioning/service"
	"github.com/openclaw/clawup/internal/sysrun"
)

// DoctorStatus is the machine-readable host diagnosis.
type DoctorStatus struct {
	Hostname    string        `json:"hostname"`
	Provisioned bool          `json:"provisioned"`
	Tools       []ToolHealth  `json:"tools"`
	Reboot      RebootHealth  `json:"reboot"`
	Account     AccountHealth `json:"account"`
	Install     InstallHealth `json:"install"`
	Service     ServiceHealth `json:"service"`
}

// ToolHealth reports one host tool check.
type ToolHealth struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
}

// RebootHealth reports the reboot-resume protocol state.
type RebootHealth struct {
	MarkerPresent   bool `json:"markerPresent"`
	SentinelPresent bool `json:"sentinelPresent"`
	CronResidue     bool `json:"cronResidue"`
}

// AccountHealth reports the service account state.
type AccountHealth struct {
	User   string `json:"user"`
	Exists bool   `json:"exists"`
}

// InstallHealth reports the application install state.
type InstallHealth struct {
	Dir        string `json:"dir"`
	DirExists  bool   `json:"dirExists"`
	EnvPresent bool   `json:"envPresent"`
}

// ServiceHealth reports the systemd unit state.
type ServiceHealth struct {
	Unit        string `json:"unit"`
	UnitPresent bool   `json:"unitPresent"`
	Active      bool   `json:"active"`
}

var (
	readyMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Render("[OK]")
	failMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Render("[!!]")
	warnMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")).Render("[??]")
)

// Doctor inspects the host and reports its provisioning state.
//
// It never mutates the host. The exit status is non-zero when a
// required host tool is missing, everything else is informational.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, _, err := loadApplyConfig(configPath)
	if err != nil {
		return err
	}

	runner := newRunner()
	cp, err := newCheckpoint(runner)
	if err != nil {
		return err
	}

	status := diagnose(ctx, cfg, runner, cp)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			return err
		}
	} else {
		printDoctor(status)
	}

	for _, tool := range status.Tools {
		if tool.Required && !tool.Found {
			return fmt.Errorf("missing required tool: %s", tool.Name)
		}
	}
	return nil
}

// cronChecker is the checkpoint surface doctor needs.
type cronChecker interface {
	Pending() bool
	RebootRequired() bool
	HasCronEntry(ctx context.Context) bool
}

func diagnose(ctx context.Context, cfg *config.Config, runner sysrun.Runner, cp cronChecker) *DoctorStatus {
	hostname, _ := os.Hostname()
	status := &DoctorStatus{
		Hostname: hostname,
		Reboot: RebootHealth{
			MarkerPresent:   cp.Pending(),
			SentinelPresent: cp.RebootRequired(),
			CronResidue:     cp.HasCronEntry(ctx),
		},
		Account: AccountHealth{User: cfg.Install.ServiceUser},
		Install: InstallHealth{Dir: cfg.Install.Dir},
		Service: ServiceHealth{Unit: service.UnitName},
	}

	for _, result := range checkHostPrereqs().Results {
		status.Tools = append(status.Tools, ToolHealth{
			Name:     result.Tool.Name,
			Required: result.Tool.Required,
			Found:    result.Found,
			Path:     result.Path,
		})
	}

	if _, err := runner.Output(ctx, "id", "-u", cfg.Install.ServiceUser); err == nil {
		status.Account.Exists = true
	}

	if info, err := os.Stat(cfg.Install.Dir); err == nil && info.IsDir() {
		status.Install.DirExists = true
	}
	if _, err := os.Stat(filepath.Join(cfg.Install.Dir, ".env")); err == nil {
		status.Install.EnvPresent = true
	}

	if _, err := os.Stat(filepath.Join("/etc/systemd/system", service.UnitName)); err == nil {
		status.Service.UnitPresent = true
	}
	if out, err := runner.Output(ctx, "systemctl", "is-active", service.UnitName); err == nil &&
		strings.TrimSpace(out) == "active" {
		status.Service.Active = true
	}

	status.Provisioned = status.Account.Exists &&
		status.Install.DirExists &&
		status.Install.EnvPresent &&
		status.Service.UnitPresent &&
		status.Service.Active &&
		!status.Reboot.MarkerPresent

	return status
}

func printDoctor(status *DoctorStatus) {
	styled := isInteractiveTTY()
	mark := func(ok bool) string {
		if !styled {
			if ok {
				return "[OK]"
			}
			return "[!!]"
		}
		if ok {
			return readyMark
		}
		return failMark
	}

	fmt.Println()
	fmt.Printf("  clawup doctor: %s\n", status.Hostname)
	fmt.Println("  " + strings.Repeat("-", 35))

	fmt.Println("  Tools")
	for _, tool := range status.Tools {
		m := mark(tool.Found)
		if !tool.Found && !tool.Required {
			m = "[--]"
			if styled {
				m = warnMark
			}
		}
		fmt.Printf("    %s %-12s %s\n", m, tool.Name, tool.Path)
	}

	fmt.Println("  Reboot")
	fmt.Printf("    %s no pending marker\n", mark(!status.Reboot.MarkerPresent))
	fmt.Printf("    %s no reboot-required sentinel\n", mark(!status.Reboot.SentinelPresent))
	fmt.Printf("    %s no crontab residue\n", mark(!status.Reboot.CronResidue))

	fmt.Println("  Host")
	fmt.Printf("    %s service account %s\n", mark(status.Account.Exists), status.Account.User)
	fmt.Printf("    %s install dir %s\n", mark(status.Install.DirExists), status.Install.Dir)
	fmt.Printf("    %s environment file\n", mark(status.Install.EnvPresent))
	fmt.Printf("    %s unit %s installed\n", mark(status.Service.UnitPresent), status.Service.Unit)
	fmt.Printf("    %s unit active\n", mark(status.Service.Active))

	fmt.Println()
	if status.Provisioned {
		fmt.Println("  Host is fully provisioned.")
	} else {
		fmt.Println("  Host is not fully provisioned. Run 'clawup apply' to provision it.")
	}
	fmt.Println()
}
