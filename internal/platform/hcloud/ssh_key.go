package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"golang.org/x/crypto/ssh"
)

// EnsureSSHKey returns the SSH key with the given name, creating it
// from publicKey when it does not exist yet. An existing key is only
// reused when its fingerprint matches publicKey; a silent reuse of a
// stale key would hand out a server the local private key cannot open.
func (c *Client) EnsureSSHKey(ctx context.Context, name, publicKey string) (*hcloud.SSHKey, error) {
	key, _, err := c.client.SSHKey.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up ssh key %s: %w", name, err)
	}
	if key != nil {
		match, err := fingerprintMatches(key.Fingerprint, publicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key for %s: %w", name, err)
		}
		if !match {
			return nil, fmt.Errorf(
				"ssh key %s already exists with fingerprint %s, which does not match the generated key; delete the stale key or choose another server name",
				name, key.Fingerprint)
		}
		return key, nil
	}

	key, _, err = c.client.SSHKey.Create(ctx, hcloud.SSHKeyCreateOpts{
		Name:      name,
		PublicKey: publicKey,
		Labels:    map[string]string{"managed-by": "clawup"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ssh key %s: %w", name, err)
	}
	return key, nil
}

// fingerprintMatches compares the API-reported MD5 fingerprint with the
// one derived from an authorized_keys-format public key.
func fingerprintMatches(remote, publicKey string) (bool, error) {
	parsed, _, _, _, err := ssh.ParseAuthorizedKey([]byte(publicKey))
	if err != nil {
		return false, err
	}
	return ssh.FingerprintLegacyMD5(parsed) == remote, nil
}
