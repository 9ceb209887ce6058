package config

// Defaults applied when clawup.yaml leaves a field unset.
const (
	DefaultPrimaryProvider  = "anthropic"
	DefaultPrimaryModel     = "claude-sonnet-4-5"
	DefaultFallbackProvider = "openrouter"
	DefaultFallbackModel    = "deepseek/deepseek-chat"

	// DefaultGatewayPort is the OpenClaw gateway's standard listening port.
	DefaultGatewayPort = 18789

	DefaultLogLevel = "info"

	DefaultInstallDir  = "/opt/openclaw"
	DefaultRepoURL     = "https://github.com/openclaw/openclaw.git"
	DefaultBranch      = "main"
	DefaultServiceUser = "openclaw"
)

// Names of the environment variables that must carry the provider API keys.
const (
	AnthropicKeyEnv  = "ANTHROPIC_API_KEY"
	OpenRouterKeyEnv = "OPENROUTER_API_KEY"
)

// DefaultConfigFile is the config file looked up in the working directory
// when no --config flag is given.
const DefaultConfigFile = "clawup.yaml"
