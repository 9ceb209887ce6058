// Package config defines the configuration model for a clawup
// provisioning run.
//
// The [Config] struct is the canonical representation of the target
// host's desired state: provider and model selection for the OpenClaw
// gateway, the gateway port, and where and under which account the
// application is installed. It is loaded from a clawup.yaml file and
// validated before any phase runs.
//
// Secret API keys are deliberately not part of the file format; they
// are resolved from the environment via [LoadSecrets].
package config
