package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Credentials.YouTube.ProxyURL != "http://127.0.0.1:8080" {
			t.Errorf("expected youtube proxy URL http://127.0.0.1:8080, got %s", config.Credentials.YouTube.ProxyURL)
		}

		if config.Credentials.Spotify.ClientID != "your_spotify_client_id" {
			t.Errorf("expected spotify client_id your_spotify_client_id, got %s", config.Credentials.Spotify.ClientID)
		}

		if config.Transfer.PageSize != 100 {
			t.Errorf("expected page size 100, got %d", config.Transfer.PageSize)
		}

		if config.Transfer.Strategy != "first" {
			t.Errorf("expected strategy first, got %s", config.Transfer.Strategy)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Transfer.Description != DefaultConfig().Transfer.Description {
			t.Errorf("created config description doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("overrides defaults and keeps missing keys", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			testConfig := `[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[credentials.youtube]
proxy_url = "http://localhost:9090"

[transfer]
search_workers = 4
strategy = "token_overlap"
`
			if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			config, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if config.Credentials.YouTube.ProxyURL != "http://localhost:9090" {
				t.Errorf("expected proxy url override, got %s", config.Credentials.YouTube.ProxyURL)
			}
			if config.Transfer.SearchWorkers != 4 {
				t.Errorf("expected 4 search workers, got %d", config.Transfer.SearchWorkers)
			}
			if config.Transfer.PageSize != 100 {
				t.Errorf("expected default page size to survive, got %d", config.Transfer.PageSize)
			}
		})

		t.Run("rejects invalid values", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte("[transfer]\nstrategy = \"closest\"\n"), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			_, err := LoadConfig(configPath)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("missing file", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
				t.Error("expected error for missing file")
			}
		})
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(*Config)
		}{
			{name: "page size too large", mutate: func(c *Config) { c.Transfer.PageSize = 101 }},
			{name: "zero workers", mutate: func(c *Config) { c.Transfer.SearchWorkers = 0 }},
			{name: "negative cache", mutate: func(c *Config) { c.Transfer.SearchCacheSize = -1 }},
			{name: "score above one", mutate: func(c *Config) { c.Transfer.MinScore = 1.5 }},
			{name: "negative rate", mutate: func(c *Config) { c.Credentials.YouTube.RequestsPerSecond = -2 }},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})
}

func TestCredentials(t *testing.T) {
	t.Run("LoadCredentials", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "spotify.json")
		body := `{"SPOTIFY_CLIENT_ID": "id123", "SPOTIFY_CLIENT_SECRET": "secret456"}`
		if err := os.WriteFile(path, []byte(body), 0600); err != nil {
			t.Fatalf("failed to write credentials: %v", err)
		}

		id, secret, err := LoadCredentials(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id != "id123" || secret != "secret456" {
			t.Errorf("unexpected credentials %q %q", id, secret)
		}
	})

	t.Run("LoadCredentials with missing keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "spotify.json")
		if err := os.WriteFile(path, []byte(`{"SPOTIFY_CLIENT_ID": "id123"}`), 0600); err != nil {
			t.Fatalf("failed to write credentials: %v", err)
		}

		if _, _, err := LoadCredentials(path); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("SpotifyCredentials prefers config values", func(t *testing.T) {
		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "cfg_id"
		config.Credentials.Spotify.ClientSecret = "cfg_secret"

		id, secret, err := config.SpotifyCredentials()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id != "cfg_id" || secret != "cfg_secret" {
			t.Errorf("unexpected credentials %q %q", id, secret)
		}
	})

	t.Run("SpotifyCredentials falls back to file for placeholder", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "spotify.json")
		body := `{"SPOTIFY_CLIENT_ID": "file_id", "SPOTIFY_CLIENT_SECRET": "file_secret"}`
		if err := os.WriteFile(path, []byte(body), 0600); err != nil {
			t.Fatalf("failed to write credentials: %v", err)
		}

		config := DefaultConfig()
		config.Credentials.Spotify.CredentialsFile = path

		id, _, err := config.SpotifyCredentials()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id != "file_id" {
			t.Errorf("expected file_id, got %s", id)
		}
	})

	t.Run("SpotifyCredentials without any source", func(t *testing.T) {
		config := DefaultConfig()
		config.Credentials.Spotify.CredentialsFile = ""

		if _, _, err := config.SpotifyCredentials(); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}
