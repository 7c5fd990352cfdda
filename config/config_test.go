package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Environment: "development"}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg = &Config{Environment: "production"}
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())

	cfg = &Config{Environment: "staging"}
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadWithOptions(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("DB_HOST", "db.supabase.co")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "https://proxy.local/v1/")
	t.Setenv("BREVO_API_KEY", "xkeysib-test")
	t.Setenv("BREVO_SENDER_EMAIL", "news@acme.test")
	t.Setenv("SEND_CONCURRENCY", "4")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "db.supabase.co", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.True(t, cfg.IsDevelopment())

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "https://proxy.local/v1", cfg.LLM.OpenAIBaseURL)
	assert.Equal(t, "gpt-4", cfg.LLM.OpenAIChatModel)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, 1000, cfg.LLM.MaxTokens)

	assert.Equal(t, "brevo", cfg.Email.Provider)
	assert.Equal(t, "Newsletter Generator", cfg.Email.SenderName)
	assert.Equal(t, "news@acme.test", cfg.Email.SenderEmail)

	assert.Equal(t, 100, cfg.Limits.ImportBatchSize)
	assert.Equal(t, int64(5*1024*1024), cfg.Limits.MaxCSVBytes)
	assert.Equal(t, 4, cfg.Limits.SendConcurrency)
	assert.Equal(t, VERSION, cfg.Version)
}

func TestLoadWithOptions_UnsupportedProviders(t *testing.T) {
	t.Run("llm provider", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "cohere")

		_, err := LoadWithOptions(LoadOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LLM_PROVIDER")
	})

	t.Run("email provider", func(t *testing.T) {
		t.Setenv("EMAIL_PROVIDER", "pigeon")

		_, err := LoadWithOptions(LoadOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EMAIL_PROVIDER")
	})

	t.Run("batch size", func(t *testing.T) {
		t.Setenv("IMPORT_BATCH_SIZE", "0")

		_, err := LoadWithOptions(LoadOptions{})
		require.Error(t, err)
	})
}

func TestLoadWithOptions_EnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("SERVER_PORT=7070\nEMAIL_PROVIDER=console\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := LoadWithOptions(LoadOptions{EnvFile: ".env.test"})
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "console", cfg.Email.Provider)
}

func TestLoadWithOptions_MissingEnvFileIsIgnored(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := LoadWithOptions(LoadOptions{EnvFile: ".env.missing"})
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Limits.SendConcurrency)
}

func TestMissingIntegrations(t *testing.T) {
	cfg := &Config{
		LLM:   LLMConfig{Provider: "anthropic"},
		Email: EmailConfig{Provider: "brevo"},
	}

	missing := cfg.MissingIntegrations()
	assert.ElementsMatch(t, []string{
		"DB_PASSWORD",
		"OPENAI_API_KEY",
		"ANTHROPIC_API_KEY",
		"BREVO_API_KEY",
		"BREVO_SENDER_EMAIL",
		"API_ENDPOINT",
	}, missing)

	cfg = &Config{
		Database:    DatabaseConfig{Password: "x"},
		LLM:         LLMConfig{Provider: "openai", OpenAIAPIKey: "sk"},
		Email:       EmailConfig{Provider: "console"},
		APIEndpoint: "http://localhost:8080",
	}
	assert.Empty(t, cfg.MissingIntegrations())
}
