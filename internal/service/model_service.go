package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	app_errors "chatbench/internal/errors"
	"chatbench/internal/events"
	"chatbench/internal/hub"
)

const bytesPerGB = 1 << 30

// ModelHub is the part of the Hub client the model service needs.
type ModelHub interface {
	ListGGUF(ctx context.Context, repoID string) ([]string, error)
	Download(ctx context.Context, req hub.DownloadRequest, ch chan<- hub.DownloadStatus) (string, error)
}

// ModelInfo describes a model file on disk.
type ModelInfo struct {
	Path      string  `json:"path"`
	Name      string  `json:"name"`
	Exists    bool    `json:"exists"`
	SizeBytes int64   `json:"size_bytes,omitempty"`
	SizeGB    float64 `json:"size_gb,omitempty"`
}

// ModelService handles local model files and Hub downloads.
type ModelService struct {
	hub       ModelHub
	settings  *SettingsService
	publisher events.Publisher
	modelsDir string
}

func NewModelService(h ModelHub, settings *SettingsService, publisher events.Publisher, modelsDir string) *ModelService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &ModelService{hub: h, settings: settings, publisher: publisher, modelsDir: modelsDir}
}

// Inspect reports whether path is an existing model file and its size.
func (s *ModelService) Inspect(_ context.Context, path string) (*ModelInfo, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: model path is required", app_errors.ErrValidation)
	}
	info := &ModelInfo{Path: path, Name: filepath.Base(path)}
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return info, nil
		}
		return nil, fmt.Errorf("could not stat model: %w", err)
	}
	if st.IsDir() {
		return info, nil
	}
	info.Exists = true
	info.SizeBytes = st.Size()
	info.SizeGB = sizeGB(st.Size())
	return info, nil
}

// ListLocal walks the models directory for GGUF files, sorted by file name
// and then path.
func (s *ModelService) ListLocal(_ context.Context) ([]ModelInfo, error) {
	models := []ModelInfo{}
	err := filepath.WalkDir(s.modelsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.modelsDir {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), hub.GGUFSuffix) {
			return nil
		}
		st, err := d.Info()
		if err != nil {
			return err
		}
		models = append(models, ModelInfo{
			Path:      path,
			Name:      d.Name(),
			Exists:    true,
			SizeBytes: st.Size(),
			SizeGB:    sizeGB(st.Size()),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not list models: %w", err)
	}
	sort.Slice(models, func(i, j int) bool {
		if models[i].Name != models[j].Name {
			return models[i].Name < models[j].Name
		}
		return models[i].Path < models[j].Path
	})
	return models, nil
}

func (s *ModelService) ListHubFiles(ctx context.Context, repoID string) ([]string, error) {
	return s.hub.ListGGUF(ctx, strings.TrimSpace(repoID))
}

// Download fetches a GGUF file, streaming progress to ch, and selects it as
// the active model once it is on disk. ch is closed on return.
func (s *ModelService) Download(ctx context.Context, req *hub.DownloadRequest, ch chan<- hub.DownloadStatus) error {
	if req.LocalDir == "" {
		req.LocalDir = hub.DefaultLocalDir(s.modelsDir, req.RepoID)
	}

	path, err := s.hub.Download(ctx, *req, ch)
	if err != nil {
		return err
	}
	slog.Info("Model downloaded", "repo", req.RepoID, "file", req.Filename, "path", path)

	if err := s.settings.SetModelPath(ctx, path); err != nil {
		return fmt.Errorf("downloaded model could not be selected: %w", err)
	}

	if err := s.publisher.Publish(events.SubjectModelDownloaded, events.ModelDownloaded{
		RepoID:   req.RepoID,
		Filename: req.Filename,
		Path:     path,
		At:       time.Now().UTC(),
	}); err != nil {
		slog.Warn("Failed to publish download event", "error", err)
	}
	return nil
}

func sizeGB(n int64) float64 {
	return math.Round(float64(n)/bytesPerGB*100) / 100
}
