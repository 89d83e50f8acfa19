package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDeployment = `
server:
  hostname: "127.0.0.1"
  port: 8090
  read_timeout: 15s
  write_timeout: 15s
  idle_timeout: 60s
database:
  consent:
    type: "mysql"
    hostname: "localhost"
    port: 3306
    user: "consentuser"
    password: "consentpass"
    database: "consentdb"
logging:
  level: "debug"
  format: "json"
consent:
  code_length: 6
  code_expiry_minutes: 10
  max_attempts: 5
  resend_cooldown_seconds: 60
  max_resend_count: 5
  rate_limit_window_minutes: 60
  rate_limit_max_submissions: 5
email:
  from_email: "noreply@perfectbrow.com"
  from_name: "Perfect Brow"
cors:
  enabled: true
`

func writeDeployment(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deployment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeDeployment(t, testDeployment))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8090", cfg.Server.GetServerAddress())
	assert.Equal(t, "mysql", cfg.Database.Consent.Type)
	assert.Equal(t, 6, cfg.Consent.CodeLength)
	assert.Equal(t, 10*time.Minute, cfg.Consent.CodeExpiry())
	assert.Equal(t, 60*time.Second, cfg.Consent.ResendCooldown())
	assert.Equal(t, time.Hour, cfg.Consent.RateLimitWindow())
	assert.Equal(t, "Perfect Brow <noreply@perfectbrow.com>", cfg.Email.FromAddress())

	// Load publishes the config globally.
	assert.Same(t, cfg, Get())
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr string
	}{
		{"zero code length", "code_length: 6", "code_length: 0", "code length"},
		{"bad server port", "port: 8090", "port: 0", "invalid server port"},
		{"missing db hostname", `hostname: "localhost"`, `hostname: ""`, "database hostname"},
		{"missing from email", `from_email: "noreply@perfectbrow.com"`, `from_email: ""`, "from address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Replace(testDeployment, tt.from, tt.to, 1)
			require.NotEqual(t, testDeployment, content)

			_, err := Load(writeDeployment(t, content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetGlobal(t *testing.T) {
	previous := Get()
	defer SetGlobal(previous)

	override := &Config{}
	SetGlobal(override)
	assert.Same(t, override, Get())
}
