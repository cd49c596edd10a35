package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GIGSHIELD_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultTone != "professional" {
		t.Errorf("DefaultTone = %q, want professional", cfg.DefaultTone)
	}
	if cfg.DeadlineDays != 10 {
		t.Errorf("DeadlineDays = %d, want 10", cfg.DeadlineDays)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api_url: "https://api.example.com"
firebase_api_key: "key-from-file"
email: "worker@example.com"
default_tone: "assertive"
default_state: "CA"
deadline_days: 14
theme: "nord"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GIGSHIELD_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != "https://api.example.com" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.FirebaseAPIKey != "key-from-file" {
		t.Errorf("FirebaseAPIKey = %q", cfg.FirebaseAPIKey)
	}
	if cfg.DefaultState != "CA" {
		t.Errorf("DefaultState = %q", cfg.DefaultState)
	}
	if cfg.DeadlineDays != 14 {
		t.Errorf("DeadlineDays = %d", cfg.DeadlineDays)
	}
	if cfg.Theme != "nord" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api_url: "https://file.example.com"
firebase_api_key: "key-from-file"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GIGSHIELD_CONFIG", path)
	t.Setenv("GIGSHIELD_API_URL", "https://env.example.com")
	t.Setenv("GIGSHIELD_FIREBASE_API_KEY", "key-from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != "https://env.example.com" {
		t.Errorf("APIURL = %q, want env value", cfg.APIURL)
	}
	if cfg.FirebaseAPIKey != "key-from-env" {
		t.Errorf("FirebaseAPIKey = %q, want env value", cfg.FirebaseAPIKey)
	}
}

func TestSavePreservesSecrets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `firebase_api_key: "secret-key"
theme: "default"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GIGSHIELD_CONFIG", path)

	cfg := &Config{
		Email:        "worker@example.com",
		DefaultTone:  "empathetic",
		DeadlineDays: 10,
		Theme:        "dracula",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	saved := string(data)
	if !strings.Contains(saved, "secret-key") {
		t.Error("Save dropped the API key")
	}
	if !strings.Contains(saved, "dracula") {
		t.Error("Save lost the theme")
	}
	if !strings.Contains(saved, "worker@example.com") {
		t.Error("Save lost the email")
	}
}

func TestSaveExampleConfigDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("api_url: \"https://keep.me\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GIGSHIELD_CONFIG", path)

	if err := SaveExampleConfig(); err != nil {
		t.Fatalf("SaveExampleConfig failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "keep.me") {
		t.Error("SaveExampleConfig overwrote an existing config")
	}
}
