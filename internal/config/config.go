// Package config loads and saves the frontend's YAML configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full set of recognized configuration keys.
type Config struct {
	// Hostname is the listen host: an IPv4/IPv6 literal, a DNS name, or
	// "unix:/path" for a UNIX domain socket.
	Hostname string `yaml:"hostname"`
	// Port is the TCP port; ignored for UNIX sockets.
	Port int `yaml:"port"`
	// Password, if set, requires clients to authenticate with the
	// "password" command before using privileged commands.
	Password string `yaml:"password,omitempty"`
	// PasswordHash, if set, overrides Password with a pre-hashed bcrypt
	// digest instead of a plaintext secret held in the config file.
	PasswordHash string `yaml:"password_hash,omitempty"`
	// MaxConnections bounds concurrent sessions.
	MaxConnections int `yaml:"max_connections"`
	// ConnectionTimeoutSeconds is the per-session read inactivity timeout.
	ConnectionTimeoutSeconds int `yaml:"connection_timeout"`
	// Zeroconf is an optional mDNS service name to advertise.
	Zeroconf string `yaml:"zeroconf,omitempty"`
	// CommandBlacklist lists command names that always ACK with kind Disabled.
	CommandBlacklist []string `yaml:"command_blacklist,omitempty"`
	// DefaultPlaylistScheme is the URI scheme used when saving playlists
	// without an explicit backend.
	DefaultPlaylistScheme string `yaml:"default_playlist_scheme"`
	// MusicDirectory is the filesystem root the reference core scans to
	// build its library index.
	MusicDirectory string `yaml:"music_directory,omitempty"`
	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration a freshly installed server runs
// with: open listener on the standard MPD port, no password, generous
// connection limits.
func DefaultConfig() *Config {
	return &Config{
		Hostname:                 "any",
		Port:                     6600,
		MaxConnections:           10,
		ConnectionTimeoutSeconds: 60,
		DefaultPlaylistScheme:    "m3u",
		LogLevel:                 "info",
	}
}

// LoadConfig reads configuration from path, returning defaults if the file
// does not exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes configuration to path.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsBlacklisted reports whether name appears in CommandBlacklist.
func (c *Config) IsBlacklisted(name string) bool {
	for _, n := range c.CommandBlacklist {
		if n == name {
			return true
		}
	}
	return false
}
