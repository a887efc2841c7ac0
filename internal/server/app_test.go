package server

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/cryptox"
	"github.com/dmitrijs2005/filekeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageRoot = filepath.Join(t.TempDir(), "uploads")
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.LogFormat = "json"
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_PlaintextAdminWarns(t *testing.T) {
	var logs bytes.Buffer
	app, err := NewApp(testConfig(t), &logs)
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.Contains(t, logs.String(), "ADMIN_PASSWORD_HASH")
	assert.Contains(t, logs.String(), "storage ready")
}

func TestNewCredentials(t *testing.T) {
	c := testConfig(t)
	c.AdminPasswordHash = cryptox.HashPassword([]byte("from-hash"))

	creds, err := newCredentials(c)
	require.NoError(t, err)
	assert.True(t, creds.Verify("admin", "from-hash"))
	assert.False(t, creds.Verify("admin", "password123"))

	c.AdminPasswordHash = "not-a-hash"
	_, err = newCredentials(c)
	assert.Error(t, err)
}

func TestNewApp_SeparateDataDir(t *testing.T) {
	c := testConfig(t)
	c.DataDir = filepath.Join(t.TempDir(), "docs")

	_, err := NewApp(c, &bytes.Buffer{})
	require.NoError(t, err)
	assert.DirExists(t, c.DataDir)
	assert.DirExists(t, c.StorageRoot)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(testConfig(t), &bytes.Buffer{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
