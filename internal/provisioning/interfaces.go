// Package provisioning provides the shared types for the host
// provisioning pipeline.
//
// The pipeline is organized into focused subpackages, one per phase:
//   - system/: package index refresh and full upgrade, reboot detection
//   - packages/: base dependencies and the Node.js runtime
//   - account/: the service account and its SSH access
//   - firewall/: ufw default policy and allowed ports
//   - app/: repository clone, npm install, .env rendering
//   - service/: systemd unit rendering and activation
//
// This root package contains the Phase contract, the execution context
// shared by all phases, and the pipeline runner.
package provisioning

import "errors"

// ErrRebootRequired signals that the host must reboot before
// provisioning can continue. The pipeline stops; the caller persists a
// checkpoint, reboots, and the post-boot invocation resumes with the
// update phase skipped.
var ErrRebootRequired = errors.New("reboot required to continue provisioning")

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}
