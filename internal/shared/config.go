package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// DefaultRedirectURI is used when neither the config file nor REDIRECT_URI set one.
const DefaultRedirectURI = "http://localhost:8888/api/spotify/callback"

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials" json:"credentials"`
	Provider    ProviderConfig    `toml:"provider" json:"provider"`
	Server      ServerConfig      `toml:"server" json:"server"`
	Log         LogConfig         `toml:"log" json:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify" json:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string   `toml:"client_id" json:"client_id"`
	ClientSecret string   `toml:"client_secret" json:"client_secret"`
	RedirectURI  string   `toml:"redirect_uri" json:"redirect_uri"`
	Scopes       []string `toml:"scopes" json:"scopes"`
}

// Masked returns a copy with the client secret hidden.
func (s SpotifyConfig) Masked() SpotifyConfig {
	if s.ClientSecret != "" {
		s.ClientSecret = "********"
	}
	return s
}

// ProviderConfig points at the OAuth provider endpoints.
type ProviderConfig struct {
	AuthURL  string `toml:"auth_url" json:"auth_url"`
	TokenURL string `toml:"token_url" json:"token_url"`
	Timeout  int    `toml:"timeout" json:"timeout"` // seconds
}

// TimeoutDuration converts Timeout to a [time.Duration]. Zero means no timeout.
func (p ProviderConfig) TimeoutDuration() time.Duration {
	if p.Timeout <= 0 {
		return 0
	}
	return time.Duration(p.Timeout) * time.Second
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host          string `toml:"host" json:"host"`
	Port          int    `toml:"port" json:"port"`
	Prefix        string `toml:"prefix" json:"prefix"`
	AppURL        string `toml:"app_url" json:"app_url"`
	AllowedOrigin string `toml:"allowed_origin" json:"allowed_origin"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
}

// envOverrides mirrors the environment variables the proxy reads on top of the config file.
type envOverrides struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURI  string `env:"REDIRECT_URI"`
	Host         string `env:"HOST"`
	Port         int    `env:"PORT"`
	LogLevel     string `env:"LOG_LEVEL"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// LoadConfigOrDefault loads the config at path when it exists and falls back to [DefaultConfig].
// Environment overrides are applied in both cases.
func LoadConfigOrDefault(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		loaded, err := LoadConfig(path)
		switch {
		case err == nil:
			config = loaded
		case !errors.Is(err, ErrMissingConfig):
			return nil, err
		}
	}

	if err := ApplyEnv(config); err != nil {
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

// ApplyEnv overlays CLIENT_ID, CLIENT_SECRET, REDIRECT_URI, HOST, PORT and LOG_LEVEL onto config.
//
// Unset variables leave the file values alone. An empty redirect URI falls back to [DefaultRedirectURI].
func ApplyEnv(config *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("%w: parse env: %v", ErrInvalidConfig, err)
	}

	if o.ClientID != "" {
		config.Credentials.Spotify.ClientID = o.ClientID
	}
	if o.ClientSecret != "" {
		config.Credentials.Spotify.ClientSecret = o.ClientSecret
	}
	if o.RedirectURI != "" {
		config.Credentials.Spotify.RedirectURI = o.RedirectURI
	}
	if config.Credentials.Spotify.RedirectURI == "" {
		config.Credentials.Spotify.RedirectURI = DefaultRedirectURI
	}
	if o.Host != "" {
		config.Server.Host = o.Host
	}
	if o.Port != 0 {
		config.Server.Port = o.Port
	}
	if o.LogLevel != "" {
		config.Log.Level = o.LogLevel
	}
	return nil
}

// Validate reports missing credentials or endpoints.
func (c *Config) Validate() error {
	if c.Credentials.Spotify.ClientID == "" || c.Credentials.Spotify.ClientSecret == "" {
		return fmt.Errorf("%w: client_id and client_secret must be set", ErrMissingCredentials)
	}
	if c.Provider.AuthURL == "" || c.Provider.TokenURL == "" {
		return fmt.Errorf("%w: provider auth_url and token_url must be set", ErrInvalidConfig)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if err := checkNotExists(path); err != nil {
		return err
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes config to a new file at path as TOML, readable by the owner only.
func SaveConfig(path string, config *Config) error {
	if err := checkNotExists(path); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func checkNotExists(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	return nil
}
