package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	testConfig := Config{
		Name:            "test-user",
		HistoryLocation: tmpDir, // Use temp dir as it exists
		Generator: GeneratorConfig{
			Endpoint: "http://localhost:8090/v1/generate",
			APIKey:   "test-key",
		},
		Defaults: DefaultConfig{
			OutputDir: "./test-output",
		},
	}

	data, err := json.MarshalIndent(testConfig, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}

	err = os.WriteFile(configPath, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	// Test loading the config.
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Generator.APIKey != testConfig.Generator.APIKey {
		t.Errorf("Expected API key %s, got %s", testConfig.Generator.APIKey, cfg.Generator.APIKey)
	}

	if cfg.HistoryLocation != testConfig.HistoryLocation {
		t.Errorf("Expected history location %s, got %s", testConfig.HistoryLocation, cfg.HistoryLocation)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	testConfig := Config{
		Name:            "test-user",
		HistoryLocation: tmpDir,
	}

	data, err := json.MarshalIndent(testConfig, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}

	err = os.WriteFile(configPath, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	t.Setenv("NARRATIVE_GENERATOR_KEY", "env-key")
	t.Setenv("NARRATIVE_GENERATOR_ENDPOINT", "http://env:9000/generate")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Generator.APIKey != "env-key" {
		t.Errorf("Expected env override for api key, got %s", cfg.Generator.APIKey)
	}

	if cfg.Generator.Endpoint != "http://env:9000/generate" {
		t.Errorf("Expected env override for endpoint, got %s", cfg.Generator.Endpoint)
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/path/config.json")
	if err == nil {
		t.Error("Expected error loading nonexistent config, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name: "valid config",
			config: Config{
				Name:            "test-user",
				HistoryLocation: os.TempDir(), //nolint:usetesting // Using os.TempDir() as known existing dir path for validation test, not for file I/O
				Defaults: DefaultConfig{
					OutputDir: "./output",
				},
			},
			wantError: false,
		},
		{
			name: "missing name",
			config: Config{
				HistoryLocation: os.TempDir(), //nolint:usetesting // Using os.TempDir() as known existing dir path for validation test, not for file I/O
			},
			wantError: true,
		},
		{
			name: "missing history location",
			config: Config{
				Name: "test-user",
			},
			wantError: true,
		},
		{
			name: "nonexistent history file",
			config: Config{
				Name:            "test-user",
				HistoryLocation: "/nonexistent/file.json",
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestValidateSetsDefaultOutputDir(t *testing.T) {
	cfg := Config{
		Name:            "test-user",
		HistoryLocation: os.TempDir(), //nolint:usetesting // Using os.TempDir() as known existing dir path for validation test, not for file I/O
	}

	err := cfg.Validate()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Defaults.OutputDir == "" {
		t.Error("Expected default output dir to be set")
	}
}

func TestInitConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	// Verify file was created.
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	// Read and verify the config structure without full validation.
	// Full validation would require the history file to exist, which isn't needed for this test.
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	var cfg Config
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}

	if cfg.Defaults.OutputDir == "" {
		t.Error("Default output dir was not set")
	}

	if cfg.Name == "" {
		t.Error("Default name was not set")
	}
}

func TestInitConfigAlreadyExists(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	// Create file first.
	err := os.WriteFile(configPath, []byte("{}"), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	// Try to init - should fail.
	err = InitConfig(configPath)
	if err == nil {
		t.Error("Expected error when config already exists, got nil")
	}
}
