package shared

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Transfer    TransferConfig    `toml:"transfer"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
	YouTube YouTubeConfig `toml:"youtube"`
}

// SpotifyConfig contains Spotify client-credentials settings.
type SpotifyConfig struct {
	ClientID        string `toml:"client_id"`
	ClientSecret    string `toml:"client_secret"`
	CredentialsFile string `toml:"credentials_file"`
}

// YouTubeConfig contains YouTube Music proxy settings.
type YouTubeConfig struct {
	ProxyURL          string  `toml:"proxy_url"`
	HeadersPath       string  `toml:"headers_path"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// TransferConfig tunes export and merge runs.
type TransferConfig struct {
	PageSize        int     `toml:"page_size"`
	PlaylistLimit   int     `toml:"playlist_limit"`
	ContentsLimit   int     `toml:"contents_limit"`
	SearchWorkers   int     `toml:"search_workers"`
	SearchCacheSize int     `toml:"search_cache_size"`
	Description     string  `toml:"description"`
	Strategy        string  `toml:"strategy"`
	MinScore        float64 `toml:"min_score"`
}

// LoadConfig reads a TOML configuration file from path. Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks numeric ranges and the matching strategy name.
func (c *Config) Validate() error {
	t := c.Transfer
	switch {
	case t.PageSize <= 0 || t.PageSize > 100:
		return fmt.Errorf("%w: transfer.page_size must be between 1 and 100, got %d", ErrInvalidConfig, t.PageSize)
	case t.PlaylistLimit <= 0:
		return fmt.Errorf("%w: transfer.playlist_limit must be positive", ErrInvalidConfig)
	case t.ContentsLimit <= 0:
		return fmt.Errorf("%w: transfer.contents_limit must be positive", ErrInvalidConfig)
	case t.SearchWorkers < 1:
		return fmt.Errorf("%w: transfer.search_workers must be at least 1", ErrInvalidConfig)
	case t.SearchCacheSize < 0:
		return fmt.Errorf("%w: transfer.search_cache_size must not be negative", ErrInvalidConfig)
	case t.Strategy != "first" && t.Strategy != "token_overlap":
		return fmt.Errorf("%w: unknown transfer.strategy %q", ErrInvalidConfig, t.Strategy)
	case t.MinScore < 0 || t.MinScore > 1:
		return fmt.Errorf("%w: transfer.min_score must be within [0, 1]", ErrInvalidConfig)
	}

	if c.Credentials.YouTube.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: credentials.youtube.requests_per_second must not be negative", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadCredentials reads a Spotify client id and secret from a JSON file with SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET keys.
func LoadCredentials(path string) (clientID, clientSecret string, err error) {
	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		return "", "", fmt.Errorf("%w: failed to read %s: %v", ErrMissingCredentials, path, err)
	}

	var creds struct {
		ClientID     string `json:"SPOTIFY_CLIENT_ID"`
		ClientSecret string `json:"SPOTIFY_CLIENT_SECRET"`
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", "", fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidCredentials, path, err)
	}

	if creds.ClientID == "" || creds.ClientSecret == "" {
		return "", "", fmt.Errorf("%w: %s must set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET", ErrInvalidCredentials, path)
	}

	return creds.ClientID, creds.ClientSecret, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

const placeholderClientID = "your_spotify_client_id"

// SpotifyCredentials returns the client id and secret from the config, falling back to credentials_file
// when the config still holds the example placeholder or is empty.
func (c *Config) SpotifyCredentials() (clientID, clientSecret string, err error) {
	s := c.Credentials.Spotify
	if s.ClientID != "" && s.ClientID != placeholderClientID && s.ClientSecret != "" {
		return s.ClientID, s.ClientSecret, nil
	}
	if s.CredentialsFile == "" {
		return "", "", fmt.Errorf("%w: set credentials.spotify.client_id or credentials_file", ErrMissingCredentials)
	}
	return LoadCredentials(s.CredentialsFile)
}
