package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	APIURL         string `yaml:"api_url"`
	FirebaseAPIKey string `yaml:"firebase_api_key"`
	Email          string `yaml:"email"`
	DefaultTone    string `yaml:"default_tone"`
	DefaultState   string `yaml:"default_state"`
	DeadlineDays   int    `yaml:"deadline_days"`
	Theme          string `yaml:"theme"`
}

// Load loads configuration from config file and environment variables
// Environment variables take precedence over config file values
func Load() (*Config, error) {
	cfg := &Config{
		DefaultTone:  "professional",
		DeadlineDays: 10,
	}

	// Load from config file first
	if err := cfg.loadFromFile(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Environment variables override config file
	cfg.loadFromEnv()

	return cfg, nil
}

func (c *Config) loadFromFile() error {
	configPath := getConfigPath()
	if configPath == "" {
		return os.ErrNotExist
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if url := os.Getenv("GIGSHIELD_API_URL"); url != "" {
		c.APIURL = url
	}
	if key := os.Getenv("GIGSHIELD_FIREBASE_API_KEY"); key != "" {
		c.FirebaseAPIKey = key
	}
	if email := os.Getenv("GIGSHIELD_EMAIL"); email != "" {
		c.Email = email
	}
	if daysStr := os.Getenv("GIGSHIELD_DEADLINE_DAYS"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil {
			c.DeadlineDays = d
		}
	}
}

// getConfigPath returns the path to the config file
// Priority: $GIGSHIELD_CONFIG > ~/.config/gigshield/config.yaml
func getConfigPath() string {
	if configPath := os.Getenv("GIGSHIELD_CONFIG"); configPath != "" {
		return configPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "gigshield", "config.yaml")
}

func GetConfigDir() (string, error) {
	configPath := getConfigPath()
	if configPath == "" {
		return "", fmt.Errorf("cannot determine config path")
	}
	return filepath.Dir(configPath), nil
}

// EnsureConfigDir ensures the config directory exists
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return configDir, nil
}

// SaveExampleConfig creates an example config file
func SaveExampleConfig() error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil // Already exists, don't overwrite
	}

	example := `# GigShield Configuration

# Backend API base URL (default: http://localhost:8000)
api_url: "http://localhost:8000"

# Required for sign-in: the Firebase web API key of the project the
# backend authenticates against. GIGSHIELD_FIREBASE_API_KEY also works.
firebase_api_key: ""

# Optional: email to prefill on the sign-in form
email: ""

# Optional: default tone for generated appeal letters
# (professional, empathetic, assertive)
default_tone: "professional"

# Optional: two-letter state code used for knowledge base lookups
default_state: ""

# Optional: appeal deadline in days when the notice doesn't say (default: 10)
deadline_days: 10

# Optional: color theme (default, catppuccin, dracula, nord, gruvbox)
theme: "default"
`

	return os.WriteFile(configPath, []byte(example), 0600)
}

func (c *Config) Save() error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	// Load existing config to preserve fields like the API key
	existing := &Config{DefaultTone: "professional", DeadlineDays: 10}
	if data, err := os.ReadFile(configPath); err == nil {
		yaml.Unmarshal(data, existing)
	}

	// Update only the fields we manage (not secrets from env vars)
	existing.APIURL = c.APIURL
	existing.Email = c.Email
	existing.DefaultTone = c.DefaultTone
	existing.DefaultState = c.DefaultState
	existing.DeadlineDays = c.DeadlineDays
	existing.Theme = c.Theme
	// Note: We preserve existing.FirebaseAPIKey

	data, err := yaml.Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# GigShield Configuration\n# Note: Sensitive values (API keys) can be set via environment variables or this file\n\n")
	return os.WriteFile(configPath, append(header, data...), 0600)
}
