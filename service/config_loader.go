package service

import (
	"tsshift/domain"
	"tsshift/internal/config"
)

// ConfigurationLoaderImpl loads tool configuration for commands
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadDefaultConfig discovers a config file from the working directory, or
// falls back to hardcoded defaults
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *config.Config {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// FindDefaultConfigFile searches the working directory and its parents for a
// configuration file
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile() string {
	return config.FindConfigFile("")
}
