package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.AppPort)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, "credentials.json", cfg.CredentialsPath)
	assert.Equal(t, 1024, cfg.ModelContextSize)
	assert.Equal(t, 4, cfg.ModelThreads)
	assert.Equal(t, 1, cfg.ModelBatchSize)
	assert.InDelta(t, 0.7, cfg.DefaultTemperature, 1e-9)
	assert.Equal(t, "You are a helpful AI assistant.", cfg.InitialSystemPrompt)
	assert.Empty(t, cfg.LlamaServerURL)
	assert.Empty(t, cfg.NatsURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9100")
	t.Setenv("STORE_DRIVER", " Redis ")
	t.Setenv("MODEL_THREADS", "8")
	t.Setenv("CREDENTIALS_PATH", "/secrets/sa.json")

	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.AppPort)
	assert.Equal(t, StoreRedis, cfg.StoreDriver)
	assert.Equal(t, 8, cfg.ModelThreads)
	assert.Equal(t, "/secrets/sa.json", cfg.CredentialsPath)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "LOG_LEVEL=DEBUG\nMODELS_DIR=/srv/models\nLLAMA_SERVER_URL=http://llama:8080\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "/srv/models", cfg.ModelsDir)
	assert.Equal(t, "http://llama:8080", cfg.LlamaServerURL)
}
