package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/flagx"
	"github.com/dmitrijs2005/filekeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Durations accept
// strings such as "12h" or integer nanoseconds. Zero values leave the
// current setting untouched.
type FileConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	StorageRoot                 string         `json:"storage_root" yaml:"storage_root"`
	DataDir                     string         `json:"data_dir" yaml:"data_dir"`
	MaxStorageBytes             int64          `json:"max_storage_bytes" yaml:"max_storage_bytes"`
	AdminUsername               string         `json:"admin_username" yaml:"admin_username"`
	AdminPassword               string         `json:"admin_password" yaml:"admin_password"`
	AdminPasswordHash           string         `json:"admin_password_hash" yaml:"admin_password_hash"`
	SecretKey                   string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	LogLevel                    string         `json:"log_level" yaml:"log_level"`
	LogFormat                   string         `json:"log_format" yaml:"log_format"`
	PreviewMaxBytes             int64          `json:"preview_max_bytes" yaml:"preview_max_bytes"`
	PreviewMaxChars             int            `json:"preview_max_chars" yaml:"preview_max_chars"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	DotEnvFile                  string         `json:"dotenv_file" yaml:"dotenv_file"`
}

// parseFile loads the file named by -c/-config, if any. Files ending in
// .yaml or .yml are read as YAML, anything else as JSON.
func parseFile(config *Config) error {
	path := flagx.ConfigFileFlag()

	// nothing to load
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StorageRoot, c.StorageRoot)
	setString(&config.DataDir, c.DataDir)
	setString(&config.AdminUsername, c.AdminUsername)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.AdminPasswordHash, c.AdminPasswordHash)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.DotEnvFile, c.DotEnvFile)

	if c.MaxStorageBytes != 0 {
		config.MaxStorageBytes = c.MaxStorageBytes
	}
	if c.PreviewMaxBytes != 0 {
		config.PreviewMaxBytes = c.PreviewMaxBytes
	}
	if c.PreviewMaxChars != 0 {
		config.PreviewMaxChars = c.PreviewMaxChars
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
