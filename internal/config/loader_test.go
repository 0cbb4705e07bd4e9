package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", "app:\n  name: test\n")
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Name)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 300*time.Second, cfg.Server.HTTP.WriteTimeout)

	assert.Equal(t, "google", cfg.LLM.Stages.Research.Provider)
	assert.InDelta(t, 0.3, cfg.LLM.Stages.Research.Temperature, 1e-6)
	assert.Equal(t, "openai", cfg.LLM.Stages.Draft.Provider)
	assert.InDelta(t, 0.2, cfg.LLM.Stages.Draft.Temperature, 1e-6)
	assert.InDelta(t, 0.1, cfg.LLM.Stages.Refine.Temperature, 1e-6)

	google := cfg.LLM.Providers["google"]
	assert.Equal(t, ProviderTypeGemini, google.Type)
	assert.Equal(t, "gemini-1.5-pro", google.Model)
	assert.Equal(t, "GOOGLE_GENERATIVE_AI_API_KEY", google.APIKeyEnv)
}

func TestLoadFromMergesEnvFileAndExpandsPlaceholders(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", `
database:
  driver: postgres
llm:
  providers:
    openai:
      type: openai
      api_key: ${LEGISLABOT_TEST_OPENAI:fallback-key}
      model: gpt-4o
`)
	writeConfig(t, dir, "config.staging.yaml", "database:\n  driver: sqlite\n  sqlite:\n    path: ${LEGISLABOT_TEST_DB:/tmp/x.db}\n")
	t.Setenv("APP_ENV", "staging")
	t.Setenv("LEGISLABOT_TEST_DB", "/var/lib/legislabot.db")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/var/lib/legislabot.db", cfg.Database.SQLite.Path)
	assert.Equal(t, "fallback-key", cfg.LLM.Providers["openai"].APIKey)
}

func TestLoadFromRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "database:\n  driver: mysql\n"},
		{"unknown stage provider", "llm:\n  stages:\n    draft:\n      provider: anthropic\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, "config.yaml", tt.content)
			t.Setenv("APP_ENV", "test")

			_, err := LoadFrom(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoadFromMissingBaseFile(t *testing.T) {
	_, err := LoadFrom(t.TempDir())
	assert.Error(t, err)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("LEGISLABOT_SET", "value")

	assert.Equal(t, "a=value", expandEnv("a=${LEGISLABOT_SET}"))
	assert.Equal(t, "a=value", expandEnv("a=${LEGISLABOT_SET:other}"))
	assert.Equal(t, "a=other", expandEnv("a=${LEGISLABOT_UNSET_VAR:other}"))
	assert.Equal(t, "a=", expandEnv("a=${LEGISLABOT_UNSET_VAR:}"))
	assert.Equal(t, "a=${LEGISLABOT_UNSET_VAR}", expandEnv("a=${LEGISLABOT_UNSET_VAR}"))
}

func TestMissingCredentials(t *testing.T) {
	base := func() LLMConfig {
		return LLMConfig{
			Providers: map[string]ProviderConfig{
				"google": {Type: ProviderTypeGemini, APIKeyEnv: "GOOGLE_GENERATIVE_AI_API_KEY"},
				"openai": {Type: ProviderTypeOpenAI, APIKeyEnv: "OPENAI_API_KEY"},
			},
			Stages: StagesConfig{
				Research: StageConfig{Provider: "google"},
				Draft:    StageConfig{Provider: "openai"},
				Refine:   StageConfig{Provider: "openai"},
			},
		}
	}

	t.Run("all missing", func(t *testing.T) {
		c := base()
		assert.Equal(t, []string{"GOOGLE_GENERATIVE_AI_API_KEY", "OPENAI_API_KEY"}, c.MissingCredentials())
		assert.False(t, c.ProviderConfigured("openai"))
	})

	t.Run("placeholder counts as missing", func(t *testing.T) {
		c := base()
		c.Providers["openai"] = ProviderConfig{Type: ProviderTypeOpenAI, APIKeyEnv: "OPENAI_API_KEY", APIKey: "your_openai_api_key_here"}
		c.Providers["google"] = ProviderConfig{Type: ProviderTypeGemini, APIKeyEnv: "GOOGLE_GENERATIVE_AI_API_KEY", APIKey: "g-key"}
		assert.Equal(t, []string{"OPENAI_API_KEY"}, c.MissingCredentials())
		assert.True(t, c.ProviderConfigured("google"))
	})

	t.Run("mock needs nothing", func(t *testing.T) {
		c := base()
		c.Mock = true
		assert.Empty(t, c.MissingCredentials())
		assert.True(t, c.ProviderConfigured("google"))
	})
}
