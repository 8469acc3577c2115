package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"chatbench/internal/api"
	"chatbench/internal/config"
	"chatbench/internal/database"
	"chatbench/internal/events"
	"chatbench/internal/export"
	"chatbench/internal/hub"
	"chatbench/internal/interfaces"
	"chatbench/internal/llm"
	"chatbench/internal/repository"
	"chatbench/internal/service"
	"chatbench/internal/sheets"
)

var (
	_ interfaces.ChatService     = (*service.ChatService)(nil)
	_ interfaces.SettingsService = (*service.SettingsService)(nil)
	_ interfaces.ModelService    = (*service.ModelService)(nil)
	_ interfaces.ExportService   = (*service.ExportService)(nil)
	_ service.SessionProvider    = (*llm.Cache)(nil)
	_ service.ModelHub           = (*hub.Client)(nil)
	_ export.Backend             = (*sheets.Backend)(nil)
)

// App holds the wired server and the resources it must release.
type App struct {
	DB        *sql.DB
	Redis     *redis.Client
	Server    *http.Server
	Models    *llm.Cache
	Publisher events.Publisher
}

// NewApp builds the store, services and router from cfg. The caller owns
// the returned App and must Close it.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{}

	repo, err := a.openStore(cfg)
	if err != nil {
		return nil, err
	}

	a.Publisher = events.Noop{}
	if cfg.NatsURL != "" {
		pub, err := events.NewNATSPublisher(context.Background(), cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to nats: %w", err)
		}
		a.Publisher = pub
	}

	a.Models = llm.NewCache(newLoader(cfg), llm.LoadOptions{
		ContextSize: cfg.ModelContextSize,
		Threads:     cfg.ModelThreads,
		BatchSize:   cfg.ModelBatchSize,
	})

	settingsService := service.NewSettingsService(repo, service.Settings{
		Temperature:  cfg.DefaultTemperature,
		SystemPrompt: cfg.InitialSystemPrompt,
	})
	settings, err := settingsService.InitAndGet(context.Background())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize application settings: %w", err)
	}
	slog.Info("Loaded application settings", "model_path", settings.ModelPath, "temperature", settings.Temperature)

	if ok, msg := export.ValidateCredentials(cfg.CredentialsPath); !ok {
		slog.Warn("Sheets export unavailable until credentials are provided", "reason", msg)
	}

	chatService := service.NewChatService(repo, a.Models, settingsService)
	modelService := service.NewModelService(hub.NewClient(cfg.HFEndpoint, cfg.HFToken), settingsService, a.Publisher, cfg.ModelsDir)
	exportService := service.NewExportService(repo, settingsService, export.NewExporter(sheets.New()), a.Publisher, cfg.CredentialsPath)

	router := api.NewRouter(api.Handlers{
		Chat:   api.NewChatHandler(chatService, settingsService),
		Model:  api.NewModelHandler(modelService),
		Export: api.NewExportHandler(exportService),
	}, cfg.FrontendDir)

	a.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}
	return a, nil
}

func (a *App) openStore(cfg *config.Config) (repository.Repository, error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		a.Redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			_ = a.Redis.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("Using Redis store", "addr", cfg.RedisAddr)
		return repository.NewRedisRepository(a.Redis), nil
	case config.StoreSQLite, "":
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = db
		slog.Info("Using SQLite store", "path", cfg.DatabasePath)
		return repository.NewSQLiteRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func newLoader(cfg *config.Config) llm.Loader {
	if cfg.LlamaServerURL != "" {
		slog.Info("Using remote llama.cpp server", "url", cfg.LlamaServerURL)
		return llm.NewRemoteLoader(cfg.LlamaServerURL)
	}
	loader := llm.NewProcessLoader(cfg.LlamaServerBin)
	if !loader.Available() {
		slog.Warn("llama.cpp server binary not found, chat is disabled until it is installed", "binary", cfg.LlamaServerBin)
	}
	return loader
}

// Close stops the loaded model and closes the store and event connections.
func (a *App) Close() {
	if a.Models != nil {
		if err := a.Models.Close(); err != nil {
			slog.Error("Failed to stop model session", "error", err)
		}
	}
	if a.Publisher != nil {
		a.Publisher.Close()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}
}

// Run loads configuration, serves until SIGINT/SIGTERM and returns the
// process exit code.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	a, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to start application", "error", err)
		return 1
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", a.Server.Addr)
		errCh <- a.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}
	return 0
}

func logConfigSource() {
	if used := viper.ConfigFileUsed(); used != "" {
		slog.Info("Successfully loaded configuration from file.", "file", used)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
