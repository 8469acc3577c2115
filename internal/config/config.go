package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort      int    `mapstructure:"APP_PORT"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	FrontendDir  string `mapstructure:"FRONTEND_DIR"`
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	RedisAddr    string `mapstructure:"REDIS_ADDR"`

	LlamaServerBin   string `mapstructure:"LLAMA_SERVER_BIN"`
	LlamaServerURL   string `mapstructure:"LLAMA_SERVER_URL"`
	ModelContextSize int    `mapstructure:"MODEL_CONTEXT_SIZE"`
	ModelThreads     int    `mapstructure:"MODEL_THREADS"`
	ModelBatchSize   int    `mapstructure:"MODEL_BATCH_SIZE"`
	ModelsDir        string `mapstructure:"MODELS_DIR"`

	HFEndpoint string `mapstructure:"HF_ENDPOINT"`
	HFToken    string `mapstructure:"HF_TOKEN"`

	CredentialsPath     string  `mapstructure:"CREDENTIALS_PATH"`
	DefaultTemperature  float64 `mapstructure:"DEFAULT_TEMPERATURE"`
	InitialSystemPrompt string  `mapstructure:"INITIAL_SYSTEM_PROMPT"`

	NatsURL   string `mapstructure:"NATS_URL"`
	NatsToken string `mapstructure:"NATS_TOKEN"`
}

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", 8000)
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("FRONTEND_DIR", "./frontend/dist")
	v.SetDefault("STORE_DRIVER", StoreSQLite)
	v.SetDefault("DATABASE_PATH", "./data/chatbench.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")

	v.SetDefault("LLAMA_SERVER_BIN", "llama-server")
	v.SetDefault("LLAMA_SERVER_URL", "")
	v.SetDefault("MODEL_CONTEXT_SIZE", 1024)
	v.SetDefault("MODEL_THREADS", 4)
	v.SetDefault("MODEL_BATCH_SIZE", 1)
	v.SetDefault("MODELS_DIR", "./models")

	v.SetDefault("HF_ENDPOINT", "https://huggingface.co")
	v.SetDefault("HF_TOKEN", "")

	v.SetDefault("CREDENTIALS_PATH", "credentials.json")
	v.SetDefault("DEFAULT_TEMPERATURE", 0.7)
	v.SetDefault("INITIAL_SYSTEM_PROMPT", "You are a helpful AI assistant.")

	v.SetDefault("NATS_URL", "")
	v.SetDefault("NATS_TOKEN", "")
}

// LoadConfig reads an optional .env file from the working directory and
// overlays environment variables on top of the defaults.
func LoadConfig() (*Config, error) {
	return load(viper.GetViper(), ".")
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	setDefaults(v)

	v.SetConfigName(".env")
	v.SetConfigType("env")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	return &cfg, nil
}
