// Package main is the entry point for the clawup CLI.
//
// clawup provisions a fresh Ubuntu VPS into a running OpenClaw gateway:
// system updates, dependencies, a service account, a ufw firewall, the
// application itself and a systemd unit. Runs survive a mid-flight
// reboot and resume automatically on the next boot.
//
// Commands: init, apply, create, destroy, doctor, version, completion.
//
// For detailed usage information, run:
//
//	clawup --help
package main

import (
	"fmt"
	"os"

	"github.com/openclaw/clawup/cmd/clawup/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
