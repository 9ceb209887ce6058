package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/openclaw/clawup/internal/provisioning/service"
)

// Factory function variables for destroy - can be replaced in tests.
var (
	// confirmDestroy asks for confirmation before deleting a server.
	confirmDestroy = promptConfirmDestroy

	// confirmTeardown asks for confirmation before the local teardown.
	confirmTeardown = promptConfirmTeardown

	// removePath removes a single file.
	removePath = os.Remove

	// removeTree removes a directory tree.
	removeTree = os.RemoveAll
)

// DestroyOptions holds the inputs for the destroy command.
type DestroyOptions struct {
	ConfigPath string
	ServerName string
	PurgeUser  bool
	Force      bool
}

// Destroy reverses a provisioning run on the local host: the systemd
// unit is stopped, disabled and removed, the gateway firewall rule is
// deleted, and the install dir is wiped. PurgeUser additionally removes
// the service account. Installed packages are never touched.
//
// With ServerName set, the whole Hetzner Cloud server created by
// `clawup create` is deleted instead, along with the SSH key clawup
// uploaded for it.
func Destroy(ctx context.Context, opts DestroyOptions) error {
	if opts.ServerName != "" {
		return destroyServer(ctx, opts.ServerName, opts.Force)
	}
	return destroyLocal(ctx, opts)
}

func destroyLocal(ctx context.Context, opts DestroyOptions) error {
	cfg, _, err := loadApplyConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if !opts.Force && isInteractiveTTY() {
		ok, err := confirmTeardown(cfg.Install.Dir, cfg.Install.ServiceUser, opts.PurgeUser)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("aborted")
		}
	}

	runner := newRunner()

	unitPath := filepath.Join("/etc/systemd/system", service.UnitName)
	if fileExists(unitPath) {
		if err := runner.Run(ctx, "systemctl", "disable", "--now", service.UnitName); err != nil {
			return fmt.Errorf("systemctl disable: %w", err)
		}
		if err := removePath(unitPath); err != nil {
			return fmt.Errorf("remove %s: %w", unitPath, err)
		}
		if err := runner.Run(ctx, "systemctl", "daemon-reload"); err != nil {
			return fmt.Errorf("systemctl daemon-reload: %w", err)
		}
		log.Printf("Service %s removed", service.UnitName)
	}

	// The OpenSSH rule stays, removing it would cut off the operator.
	port := strconv.Itoa(cfg.Gateway.Port)
	if err := runner.Run(ctx, "ufw", "--force", "delete", "allow", port+"/tcp"); err != nil {
		return fmt.Errorf("ufw delete: %w", err)
	}
	log.Printf("Firewall rule for %s/tcp removed", port)

	if err := removeTree(cfg.Install.Dir); err != nil {
		return fmt.Errorf("remove %s: %w", cfg.Install.Dir, err)
	}
	log.Printf("Install dir %s removed", cfg.Install.Dir)

	if opts.PurgeUser {
		user := cfg.Install.ServiceUser
		if _, err := runner.Output(ctx, "id", "-u", user); err == nil {
			if err := runner.Run(ctx, "userdel", "-r", user); err != nil {
				return fmt.Errorf("userdel %s: %w", user, err)
			}
			log.Printf("Account %s removed", user)
		}
	}

	return nil
}

// destroyServer deletes the named server and the SSH key clawup
// uploaded for it. A missing server is reported, not treated as an
// error.
func destroyServer(ctx context.Context, name string, force bool) error {
	token := os.Getenv("HCLOUD_TOKEN")
	if token == "" {
		return fmt.Errorf("HCLOUD_TOKEN is not set")
	}
	client := newCloudClient(token)

	if !force && isInteractiveTTY() {
		ok, err := confirmDestroy(name)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("aborted")
		}
	}

	deleted, err := client.DestroyServer(ctx, name)
	if err != nil {
		return err
	}
	if !deleted {
		log.Printf("Server %s not found, nothing to delete", name)
	} else {
		log.Printf("Server %s deleted", name)
	}

	keyDeleted, err := client.DeleteSSHKey(ctx, name)
	if err != nil {
		return err
	}
	if keyDeleted {
		log.Printf("SSH key %s deleted", name)
	}

	return nil
}

func promptConfirmDestroy(name string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete server %s?", name)).
		Description("All server data will be lost. This cannot be undone.").
		Affirmative("Delete").
		Negative("Abort").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation canceled: %w", err)
	}
	return ok, nil
}

func promptConfirmTeardown(installDir, serviceUser string, purgeUser bool) (bool, error) {
	desc := fmt.Sprintf("Stops and removes %s, deletes the gateway firewall rule and wipes %s.",
		service.UnitName, installDir)
	if purgeUser {
		desc += fmt.Sprintf(" The account %s is deleted too.", serviceUser)
	}

	var ok bool
	err := huh.NewConfirm().
		Title("Remove OpenClaw from this host?").
		Description(desc).
		Affirmative("Remove").
		Negative("Abort").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation canceled: %w", err)
	}
	return ok, nil
}
