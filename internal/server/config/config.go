// Package config handles configuration for the server component,
// including defaults, a JSON or YAML file overlay, environment variables
// (optionally seeded from a .env file) and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

// Config holds runtime settings for the filekeeper server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the HTTP API.
//   - StorageRoot: flat directory holding uploaded files.
//   - DataDir: directory of the clipboard documents; empty means StorageRoot.
//   - MaxStorageBytes: quota ceiling for StorageRoot.
//   - AdminUsername / AdminPassword: the single login. AdminPasswordHash,
//     when set, replaces the plaintext password.
//   - SecretKey: HMAC secret for signing API tokens (HS256).
//   - AccessTokenValidityDuration: API token lifetime.
//   - LogLevel / LogFormat: debug|info|warn|error and console|json.
//   - PreviewMaxBytes / PreviewMaxChars: text preview limits.
//   - ShutdownTimeout: grace period for in-flight requests on stop.
//   - DotEnvFile: .env file read before environment variables.
type Config struct {
	EndpointAddrHTTP            string
	StorageRoot                 string
	DataDir                     string
	MaxStorageBytes             int64
	AdminUsername               string
	AdminPassword               string
	AdminPasswordHash           string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogLevel                    string
	LogFormat                   string
	PreviewMaxBytes             int64
	PreviewMaxChars             int
	ShutdownTimeout             time.Duration
	DotEnvFile                  string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the credentials and secret key are well known and must be
// overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.StorageRoot = "uploads"
	c.DataDir = ""
	c.MaxStorageBytes = 1 * common.GiB
	c.AdminUsername = "admin"
	c.AdminPassword = "password123"
	c.AdminPasswordHash = ""
	c.SecretKey = "your-secret-key-here"
	c.AccessTokenValidityDuration = 12 * time.Hour
	c.LogLevel = "info"
	c.LogFormat = "console"
	c.PreviewMaxBytes = 1 * common.MiB
	c.PreviewMaxChars = 10000
	c.ShutdownTimeout = 10 * time.Second
	c.DotEnvFile = ".env"
}

// DocumentDir returns where the clipboard documents are kept.
func (c *Config) DocumentDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return c.StorageRoot
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.StorageRoot == "":
		return fmt.Errorf("storage root must be set")
	case c.MaxStorageBytes <= 0:
		return fmt.Errorf("max storage bytes must be positive, got %d", c.MaxStorageBytes)
	case c.AdminUsername == "":
		return fmt.Errorf("admin username must be set")
	case c.SecretKey == "":
		return fmt.Errorf("secret key must be set")
	case c.AccessTokenValidityDuration <= 0:
		return fmt.Errorf("access token validity must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, the environment and finally command-line
// flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
