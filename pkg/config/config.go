package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Name            string          `json:"name"`
	HistoryLocation string          `json:"history_location"`
	Generator       GeneratorConfig `json:"generator,omitempty"`
	Defaults        DefaultConfig   `json:"defaults"`
}

// GeneratorConfig holds the external text generator settings. All fields
// are optional; without an endpoint, builds fall back to static template
// bodies.
type GeneratorConfig struct {
	Endpoint  string `json:"endpoint,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string   `json:"output_dir"`
	Contexts  []string `json:"contexts,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Load reads configuration from file with environment variable overrides.
func Load(configPath string) (cfg Config, err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return cfg, err
		}
		path = filepath.Join(homeDir, ".narrative-engine", "config.json")
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'narrative-engine init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// Parse JSON
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	// Override with environment variables if set
	if apiKey := os.Getenv("NARRATIVE_GENERATOR_KEY"); apiKey != "" {
		cfg.Generator.APIKey = apiKey
	}

	if endpoint := os.Getenv("NARRATIVE_GENERATOR_ENDPOINT"); endpoint != "" {
		cfg.Generator.Endpoint = endpoint
	}

	// Validate required fields
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	if c.Name == "" {
		err = errors.New("name is required in config")
		return err
	}

	if c.HistoryLocation == "" {
		err = errors.New("history_location is required in config")
		return err
	}

	// Check history file exists
	_, err = os.Stat(c.HistoryLocation)
	if os.IsNotExist(err) {
		err = errors.Errorf("history file not found: %s", c.HistoryLocation)
		return err
	}

	// Set default output_dir if not specified
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "./narratives"
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		path = filepath.Join(homeDir, ".narrative-engine", "config.json")
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	// Create default config
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return err
	}

	defaultConfig := Config{
		Name:            "your-name",
		HistoryLocation: filepath.Join(homeDir, ".narrative-engine", "history.json"),
		Generator: GeneratorConfig{
			Endpoint: "",
			APIKey:   "",
		},
		Defaults: DefaultConfig{
			OutputDir: filepath.Join(homeDir, "Documents", "Narratives"),
			Contexts:  []string{"hiring"},
		},
	}

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
