package hcloud

import (
	"context"
	"fmt"
)

// DestroyServer deletes the named server and the managed SSH key that
// was uploaded for it. A missing server is not an error.
func (c *Client) DestroyServer(ctx context.Context, name string) (bool, error) {
	server, _, err := c.client.Server.Get(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to look up server %s: %w", name, err)
	}
	if server == nil {
		return false, nil
	}

	if _, _, err := c.client.Server.DeleteWithResult(ctx, server); err != nil {
		return false, fmt.Errorf("failed to delete server %s: %w", name, err)
	}
	return true, nil
}

// DeleteSSHKey removes the named key if it exists and carries the
// managed-by label. Unmanaged keys are left alone.
func (c *Client) DeleteSSHKey(ctx context.Context, name string) (bool, error) {
	key, _, err := c.client.SSHKey.Get(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to look up SSH key %s: %w", name, err)
	}
	if key == nil {
		return false, nil
	}
	if key.Labels["managed-by"] != "clawup" {
		return false, nil
	}
	if _, err := c.client.SSHKey.Delete(ctx, key); err != nil {
		return false, fmt.Errorf("failed to delete SSH key %s: %w", name, err)
	}
	return true, nil
}
