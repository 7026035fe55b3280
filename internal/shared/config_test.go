package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "tunescout.db" {
			t.Errorf("expected database path tunescout.db, got %s", config.Database.Path)
		}

		if config.Catalog.Market != "US" {
			t.Errorf("expected market US, got %s", config.Catalog.Market)
		}

		if config.Catalog.DefaultLimit != 20 {
			t.Errorf("expected default limit 20, got %d", config.Catalog.DefaultLimit)
		}

		if config.Session.UserID != "" {
			t.Errorf("expected empty session user, got %s", config.Session.UserID)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("SaveAndReloadSession", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		config := DefaultConfig()
		config.Session.UserID = "user-1"
		config.Session.Email = "listener@example.com"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}

		if loaded.Session.UserID != "user-1" || loaded.Session.Email != "listener@example.com" {
			t.Errorf("session did not round-trip: %+v", loaded.Session)
		}
	})

	t.Run("LoadConfigMissingFile", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("loading a missing config should fail")
		}
	})

	t.Run("SpotifyCredentialsMap", func(t *testing.T) {
		creds := SpotifyConfig{ClientID: "id", ClientSecret: "secret"}
		m := creds.Map()

		if m["client_id"] != "id" || m["client_secret"] != "secret" {
			t.Errorf("unexpected credentials map: %v", m)
		}
	})
}
