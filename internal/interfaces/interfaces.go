package interfaces

import (
	"context"

	"chatbench/internal/export"
	"chatbench/internal/hub"
	"chatbench/internal/model"
	"chatbench/internal/service"
)

// The API layer depends on these contracts rather than on the concrete
// services, so handlers can be tested against mocks.

// ChatService covers conversations and streamed replies.
type ChatService interface {
	CreateConversation(ctx context.Context, title string) (*model.Conversation, error)
	ListConversations(ctx context.Context) ([]*model.Conversation, error)
	GetTranscript(ctx context.Context, id string) (*model.Transcript, error)
	DeleteConversation(ctx context.Context, id string) error
	ClearConversation(ctx context.Context, id string) error
	HandleNewMessage(ctx context.Context, req *service.CreateMessageRequest, streamChan chan<- model.StreamResponse)
}

// SettingsService manages the generation settings.
type SettingsService interface {
	Get(ctx context.Context) (*service.Settings, error)
	Save(ctx context.Context, settings *service.Settings) error
}

// ModelService covers local model files and Hub downloads.
type ModelService interface {
	Inspect(ctx context.Context, path string) (*service.ModelInfo, error)
	ListLocal(ctx context.Context) ([]service.ModelInfo, error)
	ListHubFiles(ctx context.Context, repoID string) ([]string, error)
	Download(ctx context.Context, req *hub.DownloadRequest, ch chan<- hub.DownloadStatus) error
}

// ExportService writes transcripts to a spreadsheet.
type ExportService interface {
	Export(ctx context.Context, conversationID, sheetRef string) (*export.Result, error)
}
