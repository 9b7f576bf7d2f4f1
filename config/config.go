// Package config loads runtime settings from YAML files. A user-level file
// under ~/.agentswarm is overlaid by a project-level agentswarm.yaml in the
// working directory, with the latter taking precedence per field. Credentials
// are never read from these files; the provider adapters pick them up from
// the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/agentswarm/logging"
	"github.com/hupe1980/agentswarm/provider"
	"gopkg.in/yaml.v3"
)

const (
	userConfigDir     = ".agentswarm"
	userConfigFile    = "config.yaml"
	projectConfigFile = "agentswarm.yaml"
)

// MCPServer describes an external tool server started over stdio.
type MCPServer struct {
	Name    string   `yaml:"name"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Config holds the file-configurable settings.
type Config struct {
	// Provider selects the model backend ("openai", "anthropic", "gemini",
	// "bedrock", "ollama", "mock").
	Provider string `yaml:"provider"`

	// Model overrides the backend default model identifier.
	Model string `yaml:"model"`

	// BaseURL points at a non-default endpoint.
	BaseURL string `yaml:"base_url"`

	// Region selects the AWS region for Bedrock.
	Region string `yaml:"region"`

	// MaxTurns bounds tool-execution cycles per run. Zero or negative means
	// unbounded.
	MaxTurns int `yaml:"max_turns"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`

	// MCPServers lists external tool servers to bridge at startup.
	MCPServers []MCPServer `yaml:"mcp_servers"`
}

// Default returns the baseline configuration used when no file sets a field.
func Default() *Config {
	return &Config{
		Provider:  "openai",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads configuration from the user's home directory and the current
// working directory, with the latter taking precedence.
func Load() (*Config, error) {
	var paths []string

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, userConfigDir, userConfigFile))
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not get working directory: %w", err)
	}

	paths = append(paths, filepath.Join(wd, projectConfigFile))

	return LoadFiles(paths...)
}

// LoadFiles applies the given YAML files in order over the defaults. Later
// files override fields set by earlier ones; missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	cfg := Default()

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Unmarshal overwrites only the fields present in the YAML, which gives
	// a per-field merge where later files replace earlier ones.
	return yaml.Unmarshal(data, cfg)
}

// ProviderConfig maps the file settings onto a provider factory config.
func (c *Config) ProviderConfig() provider.Config {
	return provider.Config{
		Type:    provider.Type(c.Provider),
		Model:   c.Model,
		BaseURL: c.BaseURL,
		Region:  c.Region,
	}
}

// Logger builds a logger from the configured level and format.
func (c *Config) Logger() logging.Logger {
	return logging.NewSlogLogger(logging.ParseLogLevel(c.LogLevel), c.LogFormat, false)
}
