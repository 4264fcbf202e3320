package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewViperFromBytes_Defaults(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte("app:\n  name: relay\n"))
	require.NoError(t, err)

	assert.Equal(t, "relay", cfg.GetString("app.name"))
	assert.Equal(t, 4000, cfg.GetInt("app.server.http.port"))
	assert.Equal(t, "smtp", cfg.GetString("mail.driver"))
	assert.Equal(t, 120*time.Second, cfg.GetSecond("mail.smtp.timeout_seconds"))
	assert.Equal(t, "email.send", cfg.GetString("messaging.topic"))
	assert.False(t, cfg.GetBool("idempotency.enabled"))
	assert.InDelta(t, 1.0, cfg.GetFloat64("instrument.trace_sample_ratio"), 0.0001)
	assert.NoError(t, cfg.Close())
}

func TestNewViperFromBytes_EmptyType(t *testing.T) {
	_, err := NewViperFromBytes(" ", nil)
	assert.Error(t, err)
}

func TestNewViperFromBytes_LegacyEnv(t *testing.T) {
	t.Setenv("EMAIL_SERVER_HOST", "smtp.example.com")
	t.Setenv("EMAIL_SERVER_PORT", "465")
	t.Setenv("SMTP_SECURE", "SSL")
	t.Setenv("EMAIL_FROM", "Banglapremium <no-reply@example.com>")
	t.Setenv("PORT", "8081")

	cfg, err := NewViperFromBytes("yaml", []byte("mail:\n  smtp:\n    host: ignored.local\n"))
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com", cfg.GetString("mail.smtp.host"))
	assert.Equal(t, 465, cfg.GetInt("mail.smtp.port"))
	assert.Equal(t, "SSL", cfg.GetString("mail.smtp.secure"))
	assert.Equal(t, "Banglapremium <no-reply@example.com>", cfg.GetString("mail.from"))
	assert.Equal(t, 8081, cfg.GetInt("app.server.http.port"))
}

func TestNewViperFromBytes_UpperSnakeEnv(t *testing.T) {
	t.Setenv("MAIL_SMTP_HOST", "relay.internal")
	t.Setenv("MESSAGING_DRIVER", "kafka")

	cfg, err := NewViperFromBytes("yaml", nil)
	require.NoError(t, err)

	assert.Equal(t, "relay.internal", cfg.GetString("mail.smtp.host"))
	assert.Equal(t, "kafka", cfg.GetString("messaging.driver"))
}

func TestViper_GetArray(t *testing.T) {
	t.Parallel()

	cfg, err := NewViperFromBytes("yaml", []byte(`
csv: " a, b ,,c "
list:
  - x
  - y
empty: ""
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, cfg.GetArray("csv"))
	assert.Equal(t, []string{"x", "y"}, cfg.GetArray("list"))
	assert.Empty(t, cfg.GetArray("empty"))
	assert.Empty(t, cfg.GetArray("missing"))
}

func TestNewViper_MissingFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := NewViper(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.GetInt("app.server.http.port"))
}

func TestNewViper_ReadsFileAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("mail:\n  driver: log\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EMAIL_SERVER_USER=mailer\n"), 0o600))
	t.Setenv("EMAIL_SERVER_USER", "")
	require.NoError(t, os.Unsetenv("EMAIL_SERVER_USER"))

	cfg, err := NewViper(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "log", cfg.GetString("mail.driver"))
	assert.Equal(t, "mailer", cfg.GetString("mail.smtp.username"))
}
