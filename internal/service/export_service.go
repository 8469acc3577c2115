package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	app_errors "chatbench/internal/errors"
	"chatbench/internal/events"
	"chatbench/internal/export"
	"chatbench/internal/model"
	"chatbench/internal/repository"
)

// TranscriptExporter writes a transcript to a spreadsheet. *export.Exporter
// implements it.
type TranscriptExporter interface {
	ExportTranscript(ctx context.Context, turns []model.Turn, modelName, sheetRef, credentialsPath string) export.Result
}

// ExportRequest names the target sheet by URL or bare ID.
type ExportRequest struct {
	Sheet string `json:"sheet" validate:"required"`
}

type ExportService struct {
	repo            repository.Repository
	settings        *SettingsService
	exporter        TranscriptExporter
	publisher       events.Publisher
	credentialsPath string
}

func NewExportService(repo repository.Repository, settings *SettingsService, exporter TranscriptExporter, publisher events.Publisher, credentialsPath string) *ExportService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &ExportService{
		repo:            repo,
		settings:        settings,
		exporter:        exporter,
		publisher:       publisher,
		credentialsPath: credentialsPath,
	}
}

// Export appends the conversation's prompt/response pairs to the sheet.
// Only a missing conversation or sheet reference is returned as an error;
// every export failure is reported in the Result.
func (s *ExportService) Export(ctx context.Context, conversationID, sheetRef string) (*export.Result, error) {
	sheetRef = strings.TrimSpace(sheetRef)
	if sheetRef == "" {
		return nil, fmt.Errorf("%w: Enter a Google Sheet URL", app_errors.ErrValidation)
	}

	if _, err := s.repo.GetConversation(ctx, conversationID); err != nil {
		return nil, mapRepoError(err, "conversation "+conversationID)
	}
	turns, err := s.repo.GetTurns(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("could not get turns: %w", err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	result := s.exporter.ExportTranscript(ctx, turns, ModelDisplayName(settings.ModelPath), sheetRef, s.credentialsPath)
	if result.Success {
		if err := s.publisher.Publish(events.SubjectTranscriptExported, events.TranscriptExported{
			ConversationID: conversationID,
			SheetRef:       sheetRef,
			ModelName:      ModelDisplayName(settings.ModelPath),
			Rows:           result.Rows,
			StartRow:       result.StartRow,
			ExportedAt:     time.Now().UTC(),
		}); err != nil {
			slog.Warn("Failed to publish export event", "error", err)
		}
	}
	return &result, nil
}

// ModelDisplayName is the file name of the model path, or "unknown".
func ModelDisplayName(modelPath string) string {
	if strings.TrimSpace(modelPath) == "" {
		return export.UnknownModel
	}
	return filepath.Base(modelPath)
}
