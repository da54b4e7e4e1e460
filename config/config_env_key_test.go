package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"store": map[string]any{
			"provider": "memory",
			"collections": map[string]any{
				"bookings": "bookings",
			},
		},
		"auth": map[string]any{
			"adminEmails": []any{},
			"tokenTtl":    "24h",
		},
		"rateLimit": map[string]any{
			"requestsPerMinute": 30,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "STORE_PROVIDER", want: "store.provider"},
		{envKey: "STORE_COLLECTIONS_BOOKINGS", want: "store.collections.bookings"},
		{envKey: "AUTH_ADMINEMAILS", want: "auth.adminEmails"},
		{envKey: "AUTH_TOKENTTL", want: "auth.tokenTtl"},
		{envKey: "RATELIMIT_REQUESTSPERMINUTE", want: "rateLimit.requestsPerMinute"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	yamlBody := `
env:
  env: develop
  serviceName: studio
auth:
  provider: local
  tokenTtl: 1h
  adminEmails: []
store:
  provider: memory
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(yamlBody), 0o600))
	t.Chdir(dir)
	t.Setenv("AUTH_ADMINEMAILS", "owner@studio.test,second@studio.test")
	t.Setenv("AUTH_TOKENTTL", "90m")
	t.Setenv("STORE_PROVIDER", "firestore")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "studio", cfg.Env.ServiceName)
	assert.Equal(t, "firestore", cfg.Store.Provider)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"owner@studio.test", "second@studio.test"}, cfg.Auth.AdminEmails)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "6MB", cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "memory", cfg.Store.Provider)
	assert.Equal(t, "bookings", cfg.Store.Collections.Bookings)
	assert.Equal(t, "local", cfg.Auth.Provider)
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxUploadBytes)
	assert.Equal(t, "noop", cfg.PubSub.Provider)
	assert.Equal(t, "studio-admins", cfg.Worker.AdminTopic)
	assert.Equal(t, "log", cfg.Worker.Notifier)
}
