package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	app_errors "chatbench/internal/errors"
	"chatbench/internal/repository"
)

const (
	keyModelPath    = "model_path"
	keyTemperature  = "temperature"
	keySystemPrompt = "system_prompt"

	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// Settings holds the generation settings shared by every conversation.
type Settings struct {
	ModelPath    string  `json:"model_path"`
	Temperature  float64 `json:"temperature" validate:"gte=0,lte=2"`
	SystemPrompt string  `json:"system_prompt"`
}

type SettingsService struct {
	repo     repository.Repository
	defaults Settings
}

func NewSettingsService(repo repository.Repository, defaults Settings) *SettingsService {
	return &SettingsService{repo: repo, defaults: defaults}
}

// InitAndGet fills any missing key from the defaults and persists the result,
// so the first start writes a complete settings set.
func (s *SettingsService) InitAndGet(ctx context.Context) (*Settings, error) {
	values, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings, missing := s.fromValues(values)
	if missing {
		slog.Info("Initializing settings with defaults")
		if err := s.repo.SaveSettings(ctx, toValues(settings)); err != nil {
			return nil, fmt.Errorf("failed to save initial settings: %w", err)
		}
	}
	return settings, nil
}

// Get returns the stored settings, with defaults for keys never saved.
func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	values, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return nil, err
	}
	settings, _ := s.fromValues(values)
	return settings, nil
}

// Save validates and stores settings. A model path must point at an existing
// file; an empty path clears the selection.
func (s *SettingsService) Save(ctx context.Context, settings *Settings) error {
	if settings.Temperature < MinTemperature || settings.Temperature > MaxTemperature {
		return fmt.Errorf("%w: temperature must be between %.1f and %.1f", app_errors.ErrValidation, MinTemperature, MaxTemperature)
	}
	settings.ModelPath = strings.TrimSpace(settings.ModelPath)
	if settings.ModelPath != "" {
		info, err := os.Stat(settings.ModelPath)
		if err != nil || info.IsDir() {
			return fmt.Errorf("%w: Model not found at: %s", app_errors.ErrValidation, settings.ModelPath)
		}
	}
	return s.repo.SaveSettings(ctx, toValues(settings))
}

// SetModelPath selects a model without touching the other settings.
func (s *SettingsService) SetModelPath(ctx context.Context, path string) error {
	return s.repo.SaveSettings(ctx, map[string]string{keyModelPath: path})
}

func (s *SettingsService) fromValues(values map[string]string) (*Settings, bool) {
	settings := s.defaults
	missing := false

	if v, ok := values[keyModelPath]; ok {
		settings.ModelPath = v
	} else {
		missing = true
	}

	if v, ok := values[keyTemperature]; ok {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			slog.Warn("Ignoring malformed stored temperature", "value", v, "error", err)
		} else {
			settings.Temperature = t
		}
	} else {
		missing = true
	}

	if v, ok := values[keySystemPrompt]; ok {
		settings.SystemPrompt = v
	} else {
		missing = true
	}

	return &settings, missing
}

func toValues(s *Settings) map[string]string {
	return map[string]string{
		keyModelPath:    s.ModelPath,
		keyTemperature:  strconv.FormatFloat(s.Temperature, 'f', -1, 64),
		keySystemPrompt: s.SystemPrompt,
	}
}
