package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Providers.LiveEnabled)
	assert.Equal(t, 45*time.Second, cfg.Providers.CallTimeout)
	assert.Equal(t, 30, cfg.Sync.LookbackDays)
	assert.Equal(t, 0.1, cfg.Policy.FallbackShare)
	assert.Equal(t, 10, cfg.Policy.FallbackMinResources)
	assert.Equal(t, 0.4, cfg.Policy.UnderutilizedShare)
	assert.Equal(t, 100.0, cfg.Policy.NetworkMinSavings)
	assert.Equal(t, 200.0, cfg.Policy.DevTestMinSavings)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PROVIDER_LIVE_ENABLED", "true")
	t.Setenv("PROVIDER_CALL_TIMEOUT", "5s")
	t.Setenv("POLICY_STORAGE_SHARE", "0.25")
	t.Setenv("SYNC_SCHEDULE", "@hourly")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Providers.LiveEnabled)
	assert.Equal(t, 5*time.Second, cfg.Providers.CallTimeout)
	assert.Equal(t, 0.25, cfg.Policy.StorageShare)
	assert.Equal(t, "@hourly", cfg.Sync.Schedule)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "bad port", env: map[string]string{"SERVER_PORT": "70000"}, wantErr: "invalid server port"},
		{name: "bad driver", env: map[string]string{"DB_DRIVER": "mysql"}, wantErr: "unsupported database driver"},
		{name: "bad schedule", env: map[string]string{"SYNC_SCHEDULE": "every day"}, wantErr: "SYNC_SCHEDULE"},
		{name: "share above one", env: map[string]string{"POLICY_RESERVED_SHARE": "1.5"}, wantErr: "POLICY_RESERVED_SHARE"},
		{name: "no key in production", env: map[string]string{"ENVIRONMENT": "production"}, wantErr: "CREDENTIALS_KEY"},
		{name: "zero lookback", env: map[string]string{"SYNC_LOOKBACK_DAYS": "0"}, wantErr: "SYNC_LOOKBACK_DAYS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCredentialsKey(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "spendlens-development-key", cfg.CredentialsKey())

	cfg.Security.CredentialsKey = "real"
	assert.Equal(t, "real", cfg.CredentialsKey())
}
