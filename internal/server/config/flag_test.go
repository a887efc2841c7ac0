package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-r", "/srv/files", "-D", "/srv/data", "-m", "2048",
			"-u", "root", "-s", "secret", "-t", "30", "-l", "debug",
		}, expected: &Config{
			EndpointAddrHTTP:            "127.0.0.1:9090",
			StorageRoot:                 "/srv/files",
			DataDir:                     "/srv/data",
			MaxStorageBytes:             2048,
			AdminUsername:               "root",
			SecretKey:                   "secret",
			AccessTokenValidityDuration: 30 * time.Minute,
			LogLevel:                    "debug",
		}},
		{name: "unrelated flags ignored", args: []string{"cmd", "-x", "1", "-a", ":8080", "--verbose"},
			expected: &Config{
				EndpointAddrHTTP:            ":8080",
				AccessTokenValidityDuration: 90 * time.Second,
			}},
		{name: "bad number", args: []string{"cmd", "-m", "lots"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{AccessTokenValidityDuration: 90 * time.Second}

			err := parseFlags(config)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
