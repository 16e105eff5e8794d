package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TASKDECK_SESSION_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, localDevDatabaseURL, cfg.Database.URL)
	assert.Equal(t, 7, cfg.Session.LifetimeDays)
	assert.Equal(t, testSecret, cfg.Session.Secret)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TASKDECK_SESSION_SECRET", testSecret)
	t.Setenv("TASKDECK_SERVER_PORT", "9090")
	t.Setenv("TASKDECK_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TASKDECK_DATABASE_URL", "postgres://app:app@db:5432/taskdeck")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "postgres://app:app@db:5432/taskdeck", cfg.Database.URL)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing session secret",
			env:  map[string]string{},
		},
		{
			name: "short session secret",
			env:  map[string]string{"TASKDECK_SESSION_SECRET": "tooshort"},
		},
		{
			name: "bad log level",
			env: map[string]string{
				"TASKDECK_SESSION_SECRET":   testSecret,
				"TASKDECK_SERVER_LOG_LEVEL": "verbose",
			},
		},
		{
			name: "port out of range",
			env: map[string]string{
				"TASKDECK_SESSION_SECRET": testSecret,
				"TASKDECK_SERVER_PORT":    "70000",
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
