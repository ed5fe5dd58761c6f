package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MERCHANT_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.PrimaryStore)
	assert.Equal(t, MirrorMemory, cfg.Mirror)
	assert.Equal(t, 20, cfg.PageSizeDefault)
	assert.True(t, cfg.Reindex())
	assert.Equal(t, "default", cfg.Source("mirror"))
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MERCHANT_CONFIG_PATH", dir)
	writeConfig(t, dir, `
mirror: surrealdb
surreal_url: ws://search:8000/rpc
page_size_default: 50
log_level: debug
reindex_on_start: false
`)
	t.Setenv("MERCHANT_LOG_LEVEL", "warn")
	t.Setenv("MERCHANT_PAGE_SIZE_MAX", "200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, MirrorSurrealDB, cfg.Mirror)
	assert.Equal(t, "file", cfg.Source("mirror"))
	assert.Equal(t, 50, cfg.PageSizeDefault)
	assert.False(t, cfg.Reindex())
	assert.Equal(t, "file", cfg.Source("reindex_on_start"))

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "environment", cfg.Source("log_level"))
	assert.Equal(t, 200, cfg.PageSizeMax)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.ConfigFilePath())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MERCHANT_CONFIG_PATH", dir)
	writeConfig(t, dir, "mirror: [unclosed")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*MerchantConfig)
	}{
		{"primary store", func(c *MerchantConfig) { c.PrimaryStore = "mysql" }},
		{"mirror", func(c *MerchantConfig) { c.Mirror = "elastic" }},
		{"surreal url", func(c *MerchantConfig) { c.Mirror = MirrorSurrealDB; c.SurrealURL = "" }},
		{"page size", func(c *MerchantConfig) { c.PageSizeDefault = 0 }},
		{"page size max", func(c *MerchantConfig) { c.PageSizeMax = 5 }},
		{"log level", func(c *MerchantConfig) { c.LogLevel = "loud" }},
		{"log format", func(c *MerchantConfig) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPageSize(t *testing.T) {
	cfg := newDefault()
	assert.Equal(t, 20, cfg.PageSize(0))
	assert.Equal(t, 7, cfg.PageSize(7))
	assert.Equal(t, 1000, cfg.PageSize(5000))
}

func TestFormatMasksPassword(t *testing.T) {
	cfg := newDefault()
	cfg.SurrealPassword = "hunter2"

	assert.NotContains(t, cfg.FormatText(), "hunter2")
	assert.Contains(t, cfg.FormatText(), "primary_store")

	out, err := cfg.FormatJSON()
	require.NoError(t, err)
	assert.NotContains(t, out, "hunter2")

	var parsed struct {
		Attributes []Attribute `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Len(t, parsed.Attributes, len(attributeNames()))
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MERCHANT_CONFIG_PATH", dir)
	writeConfig(t, dir, "log_level: info\n")
	_, err := Reload()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *MerchantConfig, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, func(c *MerchantConfig) {
			select {
			case changes <- c:
			default:
			}
		}, func(error) {})
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, dir, "log_level: debug\n")

	// a truncating write can be seen before the new content
	deadline := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case c := <-changes:
			reloaded = c.LogLevel == "debug"
		case <-deadline:
			t.Fatal("no reload after config change")
		}
	}
	assert.Equal(t, "debug", Get().LogLevel)

	cancel()
	assert.NoError(t, <-done)
}
