package config

// Config holds the full provisioning configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider" yaml:"provider"`
	Gateway  GatewayConfig  `mapstructure:"gateway" yaml:"gateway"`
	Install  InstallConfig  `mapstructure:"install" yaml:"install"`
}

// ProviderConfig selects the AI providers and models the gateway uses.
type ProviderConfig struct {
	Primary       string `mapstructure:"primary" yaml:"primary"`
	PrimaryModel  string `mapstructure:"primary_model" yaml:"primary_model"`
	Fallback      string `mapstructure:"fallback" yaml:"fallback"`
	FallbackModel string `mapstructure:"fallback_model" yaml:"fallback_model"`
}

// GatewayConfig describes the listening gateway process.
type GatewayConfig struct {
	Port     int    `mapstructure:"port" yaml:"port"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// InstallConfig describes where and under which account OpenClaw is installed.
type InstallConfig struct {
	Dir         string `mapstructure:"dir" yaml:"dir"`
	Repo        string `mapstructure:"repo" yaml:"repo"`
	Branch      string `mapstructure:"branch" yaml:"branch"`
	ServiceUser string `mapstructure:"service_user" yaml:"service_user"`
}

// Default returns a configuration populated with the standard defaults.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Primary:       DefaultPrimaryProvider,
			PrimaryModel:  DefaultPrimaryModel,
			Fallback:      DefaultFallbackProvider,
			FallbackModel: DefaultFallbackModel,
		},
		Gateway: GatewayConfig{
			Port:     DefaultGatewayPort,
			LogLevel: DefaultLogLevel,
		},
		Install: InstallConfig{
			Dir:         DefaultInstallDir,
			Repo:        DefaultRepoURL,
			Branch:      DefaultBranch,
			ServiceUser: DefaultServiceUser,
		},
	}
}

// applyDefaults fills any zero-valued field with its default.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Provider.Primary == "" {
		c.Provider.Primary = d.Provider.Primary
	}
	if c.Provider.PrimaryModel == "" {
		c.Provider.PrimaryModel = d.Provider.PrimaryModel
	}
	if c.Provider.Fallback == "" {
		c.Provider.Fallback = d.Provider.Fallback
	}
	if c.Provider.FallbackModel == "" {
		c.Provider.FallbackModel = d.Provider.FallbackModel
	}
	if c.Gateway.Port == 0 {
		c.Gateway.Port = d.Gateway.Port
	}
	if c.Gateway.LogLevel == "" {
		c.Gateway.LogLevel = d.Gateway.LogLevel
	}
	if c.Install.Dir == "" {
		c.Install.Dir = d.Install.Dir
	}
	if c.Install.Repo == "" {
		c.Install.Repo = d.Install.Repo
	}
	if c.Install.Branch == "" {
		c.Install.Branch = d.Install.Branch
	}
	if c.Install.ServiceUser == "" {
		c.Install.ServiceUser = d.Install.ServiceUser
	}
}
