package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	hcloudsdk "github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/openclaw/clawup/internal/cloudinit"
	"github.com/openclaw/clawup/internal/config"
	"github.com/openclaw/clawup/internal/platform/hcloud"
	"github.com/openclaw/clawup/internal/util/keygen"
)

// CloudProvisioner is the Hetzner Cloud surface the create and destroy
// handlers need. Satisfied by *hcloud.Client, replaceable in tests.
type CloudProvisioner interface {
	EnsureSSHKey(ctx context.Context, name, publicKey string) (*hcloudsdk.SSHKey, error)
	CreateServer(ctx context.Context, spec hcloud.ServerSpec) (*hcloudsdk.Server, error)
	WaitForRunning(ctx context.Context, id int64) (*hcloudsdk.Server, error)
	DestroyServer(ctx context.Context, name string) (bool, error)
	DeleteSSHKey(ctx context.Context, name string) (bool, error)
}

// Factory function variables for create/destroy - can be replaced in tests.
var (
	// newCloudClient creates a Hetzner Cloud client.
	newCloudClient = func(token string) CloudProvisioner {
		return hcloud.NewClient(token)
	}

	// generateKeyPair generates the server's SSH key pair.
	generateKeyPair = keygen.GenerateED25519KeyPair

	// renderUserData renders the first-boot provisioning script.
	renderUserData = cloudinit.Render

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile
)

// CreateOptions holds the inputs for the create command.
type CreateOptions struct {
	ConfigPath string
	Name       string
	ServerType string
	Image      string
	Location   string
	BinaryURL  string
	SSHKeyPath string
}

// Create provisions a new Hetzner Cloud server that boots straight into
// an unattended apply run.
//
// The workflow:
//  1. Loads configuration and both provider API keys
//  2. Generates an ed25519 SSH key pair and uploads the public half
//  3. Creates the server with a cloud-init payload that fetches clawup
//     and runs apply on first boot
//  4. Waits until the server reports running and prints access details
func Create(ctx context.Context, opts CreateOptions) error {
	cfg, _, err := loadApplyConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	secrets, err := loadSecrets()
	if err != nil {
		return err
	}

	token := os.Getenv("HCLOUD_TOKEN")
	if token == "" {
		return fmt.Errorf("HCLOUD_TOKEN is not set")
	}
	client := newCloudClient(token)

	keyPair, err := generateKeyPair("clawup@" + opts.Name)
	if err != nil {
		return err
	}

	keyPath := opts.SSHKeyPath
	if keyPath == "" {
		keyPath = opts.Name + "_ed25519"
	}
	if err := writeFile(keyPath, keyPair.PrivateKey, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	log.Printf("SSH private key written to %s", keyPath)

	sshKey, err := client.EnsureSSHKey(ctx, opts.Name, string(keyPair.PublicKey))
	if err != nil {
		return err
	}

	userData, err := renderUserData(cloudinit.Params{
		Config:    *cfg,
		Secrets:   secrets,
		BinaryURL: opts.BinaryURL,
	})
	if err != nil {
		return err
	}

	log.Printf("Creating server %s (%s, %s, %s)", opts.Name, opts.ServerType, opts.Image, opts.Location)
	server, err := client.CreateServer(ctx, hcloud.ServerSpec{
		Name:       opts.Name,
		ServerType: opts.ServerType,
		Image:      opts.Image,
		Location:   opts.Location,
		SSHKeys:    []*hcloudsdk.SSHKey{sshKey},
		UserData:   userData,
	})
	if err != nil {
		return err
	}

	log.Printf("Waiting for server %d to come up", server.ID)
	server, err = client.WaitForRunning(ctx, server.ID)
	if err != nil {
		return err
	}

	printCreateSuccess(server.PublicNet.IPv4.IP.String(), keyPath, cfg)
	return nil
}

// printCreateSuccess prints access details after server creation.
func printCreateSuccess(ip, keyPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Server is up! Provisioning continues on first boot.")
	fmt.Println()
	fmt.Printf("  Address:  %s\n", ip)
	fmt.Printf("  SSH:      ssh -i %s root@%s\n", keyPath, ip)
	fmt.Printf("  Gateway:  http://%s:%d (once provisioning finishes)\n", ip, cfg.Gateway.Port)
	fmt.Println()
	fmt.Println("Follow the first boot run with:")
	fmt.Printf("  ssh -i %s root@%s tail -f /var/log/clawup-firstboot.log\n", keyPath, ip)
	fmt.Println()
}
