package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("APP_SERVICE_CALL_COOLDOWN_SECONDS", "90")

	cfg, err := config.Load("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "access", cfg.JWT.AccessSecret)
	assert.Equal(t, 90, cfg.App.ServiceCall.CooldownSeconds)
	assert.Equal(t, 100, cfg.App.ServiceCall.HistoryLimit)
	assert.Equal(t, 5, cfg.App.ServiceCall.PendingCacheTTL)
	assert.Equal(t, 15, cfg.App.Ordering.DeliveryEstimateMinutes)
	assert.Equal(t, "comanda.events", cfg.Events.Kafka.Topic)
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("APP_SERVICE_CALL_COOLDOWN_SECONDS", "soon")

	_, err := config.Load("testdata/missing.env")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		var cfg config.Config
		cfg.JWT.AccessSecret = "access"
		cfg.JWT.RefreshSecret = "refresh"
		cfg.DB.Postgres.Write.Host = "db"

		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "missing secrets", mutate: func(cfg *config.Config) { cfg.JWT.RefreshSecret = "" }, wantErr: "JWT_ACCESS_SECRET"},
		{name: "shared secret", mutate: func(cfg *config.Config) { cfg.JWT.RefreshSecret = "access" }, wantErr: "must differ"},
		{name: "missing db", mutate: func(cfg *config.Config) { cfg.DB.Postgres.Write.Host = "" }, wantErr: "DB_POSTGRES_WRITE_HOST"},
		{name: "negative cooldown", mutate: func(cfg *config.Config) { cfg.App.ServiceCall.CooldownSeconds = -1 }, wantErr: "cannot be negative"},
		{name: "negative pending ttl", mutate: func(cfg *config.Config) { cfg.App.ServiceCall.PendingCacheTTL = -1 }, wantErr: "PENDING_CACHE_TTL"},
		{name: "half bootstrap", mutate: func(cfg *config.Config) { cfg.App.Bootstrap.AdminEmail = "chef@comanda.local" }, wantErr: "go together"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
