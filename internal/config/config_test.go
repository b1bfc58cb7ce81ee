package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_USERNAME", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("ADMIN_SECRET_CODE", "9877")
	t.Setenv("SESSION_SECRET", "test-session-secret")
}

func TestLoad_SecretsFromEnv(t *testing.T) {
	viper.Reset()
	setRequiredSecrets(t)
	t.Setenv("ENV", "test-none")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", cfg.Admin.Username)
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", cfg.Admin.PasswordHash)
	assert.Equal(t, "9877", cfg.Admin.SecretCode)
	assert.Equal(t, "test-session-secret", cfg.Session.Secret)
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	setRequiredSecrets(t)
	t.Setenv("ENV", "test-none")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Session.TTLHours, "session TTL defaults to 24 hours")
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_MissingSecretsRejected(t *testing.T) {
	viper.Reset()
	t.Setenv("ENV", "test-none")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("ADMIN_SECRET_CODE", "")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingSecrets)
}

func TestLoad_DatabaseCredentialsFromEnv(t *testing.T) {
	viper.Reset()
	setRequiredSecrets(t)
	t.Setenv("ENV", "test-none")
	t.Setenv("DB_USER", "portfolio")
	t.Setenv("DB_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "portfolio", cfg.Database.User)
	assert.Equal(t, "hunter2", cfg.Database.Password)
}
