package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
env: prod
http_server:
  addresshttp: ":9090"
  timeouthttp: 10s
  idle_timeout: 20s
  shutdown_timeout: 5s
registry:
  login_url: "http://registry.local/login"
  register_url: "http://registry.local/register"
  summary_url: "http://registry.local/summary"
  timeout: 3s
session:
  ttl: 24h
  secure: true
redis_connection:
  address: "localhost:6379"
  password: "redis_pass"
  db: 2
  summary_ttl: 1m
referral:
  register_url: "https://portal.example/register"
export:
  pdf_font_path: "/fonts/Sarabun.ttf"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTPServer.AddressHTTP)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.TimeoutHTTP)
	assert.Equal(t, 20*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.ShutdownTimeout)
	assert.Equal(t, "http://registry.local/login", cfg.Registry.LoginURL)
	assert.Equal(t, "http://registry.local/register", cfg.Registry.RegisterURL)
	assert.Equal(t, "http://registry.local/summary", cfg.Registry.SummaryURL)
	assert.Equal(t, 3*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, "localhost:6379", cfg.RedisConnection.Address)
	assert.Equal(t, "redis_pass", cfg.RedisConnection.Password)
	assert.Equal(t, 2, cfg.RedisConnection.DB)
	assert.Equal(t, time.Minute, cfg.RedisConnection.SummaryTTL)
	assert.Equal(t, "https://portal.example/register", cfg.Referral.RegisterURL)
	assert.Equal(t, "/fonts/Sarabun.ttf", cfg.Export.PDFFontPath)
}

func TestLoad_DefaultValues(t *testing.T) {
	path := writeConfig(t, `
registry:
  login_url: "http://registry.local/login"
  register_url: "http://registry.local/register"
  summary_url: "http://registry.local/summary"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPServer.AddressHTTP)
	assert.Equal(t, 30*time.Second, cfg.HTTPServer.TimeoutHTTP)
	assert.Equal(t, 15*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Session.Secure)
	assert.Equal(t, "", cfg.RedisConnection.Address)
	assert.Equal(t, 30*time.Second, cfg.RedisConnection.SummaryTTL)
	assert.Equal(t, "", cfg.Export.PDFFontPath)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoad_MissingRegistryURL(t *testing.T) {
	path := writeConfig(t, `
registry:
  login_url: "http://registry.local/login"
`)

	cfg, err := Load(path)
	assert.Nil(t, cfg)
	assert.Error(t, err)
}
