// Package hcloud wraps the Hetzner Cloud API for the `clawup create`
// command: upload an SSH key, create the server with a cloud-init
// user-data payload, and wait for it to come up.
package hcloud

import (
	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// Client talks to the Hetzner Cloud API.
type Client struct {
	client *hcloud.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHCloudClient sets a custom hcloud client (useful for testing).
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a Client authenticated with the given API token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		client: hcloud.NewClient(hcloud.WithToken(token)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
