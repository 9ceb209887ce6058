package hcloud

import (
	"context"
	"fmt"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/openclaw/clawup/internal/util/retry"
)

// ServerSpec describes the server `clawup create` provisions.
type ServerSpec struct {
	Name       string
	ServerType string
	Image      string
	Location   string
	SSHKeys    []*hcloud.SSHKey
	UserData   string
}

// CreateServer creates a new server. It fails when a server with the
// same name already exists.
func (c *Client) CreateServer(ctx context.Context, spec ServerSpec) (*hcloud.Server, error) {
	existing, _, err := c.client.Server.Get(ctx, spec.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up server %s: %w", spec.Name, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("server %s already exists (id %d)", spec.Name, existing.ID)
	}

	serverType, _, err := c.client.ServerType.Get(ctx, spec.ServerType)
	if err != nil {
		return nil, fmt.Errorf("failed to get server type %s: %w", spec.ServerType, err)
	}
	if serverType == nil {
		return nil, fmt.Errorf("server type not found: %s", spec.ServerType)
	}

	image, _, err := c.client.Image.GetByNameAndArchitecture(ctx, spec.Image, serverType.Architecture)
	if err != nil {
		return nil, fmt.Errorf("failed to get image %s: %w", spec.Image, err)
	}
	if image == nil {
		return nil, fmt.Errorf("image not found: %s", spec.Image)
	}

	location, _, err := c.client.Location.Get(ctx, spec.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to get location %s: %w", spec.Location, err)
	}
	if location == nil {
		return nil, fmt.Errorf("location not found: %s", spec.Location)
	}

	result, _, err := c.client.Server.Create(ctx, hcloud.ServerCreateOpts{
		Name:       spec.Name,
		ServerType: serverType,
		Image:      image,
		Location:   location,
		SSHKeys:    spec.SSHKeys,
		UserData:   spec.UserData,
		Labels:     map[string]string{"managed-by": "clawup"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create server %s: %w", spec.Name, err)
	}
	return result.Server, nil
}

// WaitForRunning polls until the server reports running status.
// API errors are retried with backoff; only exhaustion fails.
func (c *Client) WaitForRunning(ctx context.Context, id int64) (*hcloud.Server, error) {
	var server *hcloud.Server

	err := retry.WithExponentialBackoff(ctx, func() error {
		s, _, err := c.client.Server.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return retry.Fatal(fmt.Errorf("server %d disappeared while waiting", id))
		}
		if s.Status != hcloud.ServerStatusRunning {
			return fmt.Errorf("server %d is %s", id, s.Status)
		}
		server = s
		return nil
	},
		retry.WithMaxRetries(20),
		retry.WithInitialDelay(3*time.Second),
		retry.WithMaxDelay(15*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("server %d did not reach running state: %w", id, err)
	}
	return server, nil
}
