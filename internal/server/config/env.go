package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv loads config.DotEnvFile into the process environment without
// overriding variables that are already set, then overlays the recognised
// variables onto config.
func parseEnv(config *Config) error {
	if config.DotEnvFile != "" {
		if err := godotenv.Load(config.DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", config.DotEnvFile, err)
		}
	}
	return applyEnv(config, os.LookupEnv)
}

func applyEnv(config *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"HTTP_ADDR":           &config.EndpointAddrHTTP,
		"STORAGE_ROOT":        &config.StorageRoot,
		"DATA_DIR":            &config.DataDir,
		"ADMIN_USERNAME":      &config.AdminUsername,
		"ADMIN_PASSWORD":      &config.AdminPassword,
		"ADMIN_PASSWORD_HASH": &config.AdminPasswordHash,
		"SECRET_KEY":          &config.SecretKey,
		"LOG_LEVEL":           &config.LogLevel,
		"LOG_FORMAT":          &config.LogFormat,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		if _, isSet := lookup("HTTP_ADDR"); !isSet {
			config.EndpointAddrHTTP = ":" + v
		}
	}

	ints := map[string]*int64{
		"MAX_STORAGE_BYTES": &config.MaxStorageBytes,
		"PREVIEW_MAX_BYTES": &config.PreviewMaxBytes,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	if v, ok := lookup("PREVIEW_MAX_CHARS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PREVIEW_MAX_CHARS: %w", err)
		}
		config.PreviewMaxChars = n
	}

	durations := map[string]*time.Duration{
		"ACCESS_TOKEN_VALIDITY": &config.AccessTokenValidityDuration,
		"SHUTDOWN_TIMEOUT":      &config.ShutdownTimeout,
	}
	for key, dst := range durations {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}
	return nil
}
