package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	app_errors "chatbench/internal/errors"
	"chatbench/internal/llm"
	"chatbench/internal/model"
	"chatbench/internal/repository"
)

const (
	defaultTitle   = "New chat"
	titleMaxLength = 50

	replyInvalidModel = "Please provide a valid model path."
)

// SessionProvider hands out a loaded model session for a path along with a
// release func. *llm.Cache implements it.
type SessionProvider interface {
	Acquire(ctx context.Context, modelPath string) (llm.Session, func(), error)
}

type ChatService struct {
	repo     repository.Repository
	sessions SessionProvider
	settings *SettingsService
}

// CreateMessageRequest is a new user message. An empty ConversationID starts
// a new conversation titled after the message.
type CreateMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content" validate:"required"`
}

func NewChatService(repo repository.Repository, sessions SessionProvider, settings *SettingsService) *ChatService {
	return &ChatService{repo: repo, sessions: sessions, settings: settings}
}

func (s *ChatService) CreateConversation(ctx context.Context, title string) (*model.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitle
	}
	now := time.Now().UTC()
	conv := &model.Conversation{ID: uuid.NewString(), Title: truncate(title, titleMaxLength), CreatedAt: now, UpdatedAt: now}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("could not create conversation: %w", err)
	}
	return conv, nil
}

func (s *ChatService) ListConversations(ctx context.Context) ([]*model.Conversation, error) {
	return s.repo.ListConversations(ctx)
}

// GetTranscript returns a conversation with all its turns in order.
func (s *ChatService) GetTranscript(ctx context.Context, id string) (*model.Transcript, error) {
	conv, err := s.repo.GetConversation(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "conversation "+id)
	}
	turns, err := s.repo.GetTurns(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get turns: %w", err)
	}
	return &model.Transcript{Conversation: *conv, Turns: turns}, nil
}

func (s *ChatService) DeleteConversation(ctx context.Context, id string) error {
	slog.Info("Deleting conversation", "conversation_id", id)
	return mapRepoError(s.repo.DeleteConversation(ctx, id), "conversation "+id)
}

// ClearConversation drops every turn but keeps the conversation itself.
func (s *ChatService) ClearConversation(ctx context.Context, id string) error {
	if _, err := s.repo.GetConversation(ctx, id); err != nil {
		return mapRepoError(err, "conversation "+id)
	}
	return s.repo.ClearTurns(ctx, id)
}

// HandleNewMessage appends the user turn, streams the model reply to
// streamChan and appends the assistant turn. streamChan is always closed.
// Nothing is stored when the configured model cannot be loaded.
func (s *ChatService) HandleNewMessage(ctx context.Context, req *CreateMessageRequest, streamChan chan<- model.StreamResponse) {
	defer close(streamChan)

	settings, err := s.settings.Get(ctx)
	if err != nil {
		slog.Error("Could not load settings", "error", err)
		streamChan <- model.StreamResponse{Error: "Could not load settings"}
		return
	}

	session, release, err := s.sessions.Acquire(ctx, settings.ModelPath)
	if err != nil {
		slog.Warn("Model could not be loaded", "model_path", settings.ModelPath, "error", err)
		streamChan <- model.StreamResponse{Error: replyInvalidModel}
		return
	}
	defer release()

	convID := req.ConversationID
	if convID == "" {
		conv, err := s.CreateConversation(ctx, req.Content)
		if err != nil {
			slog.Error("Error creating conversation", "error", err)
			streamChan <- model.StreamResponse{Error: "Could not create conversation"}
			return
		}
		convID = conv.ID
	}

	userTurn := &model.Turn{ID: uuid.NewString(), Role: model.RoleUser, Content: req.Content, Timestamp: time.Now().UTC()}
	if err := s.repo.AppendTurn(ctx, convID, userTurn); err != nil {
		slog.Error("Error adding user turn", "conversation_id", convID, "error", err)
		if errors.Is(err, repository.ErrNotFound) {
			streamChan <- model.StreamResponse{Error: "Could not find conversation"}
		} else {
			streamChan <- model.StreamResponse{Error: "Could not save message"}
		}
		return
	}

	history, err := s.repo.GetTurns(ctx, convID)
	if err != nil {
		slog.Error("Error getting history", "conversation_id", convID, "error", err)
		streamChan <- model.StreamResponse{Error: "Could not load conversation history"}
		return
	}
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: string(model.RoleSystem), Content: settings.SystemPrompt})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: string(turn.Role), Content: turn.Content})
	}

	reply := s.streamReply(ctx, session, messages, settings.Temperature, streamChan)

	assistantTurn := &model.Turn{ID: uuid.NewString(), Role: model.RoleAssistant, Content: reply, Timestamp: time.Now().UTC()}
	if err := s.repo.AppendTurn(ctx, convID, assistantTurn); err != nil {
		slog.Error("Failed to save assistant turn", "conversation_id", convID, "error", err)
		return
	}

	streamChan <- model.StreamResponse{Done: true, ConversationID: convID}
}

// streamReply forwards content chunks and returns the full reply. An
// inference failure becomes the "Error during inference" text, which is what
// gets stored as the assistant turn.
func (s *ChatService) streamReply(ctx context.Context, session llm.Session, messages []llm.Message, temperature float64, streamChan chan<- model.StreamResponse) string {
	llmStreamChan := make(chan llm.StreamResponse)
	errChan := make(chan error, 1)
	go func() {
		errChan <- session.CompleteStream(ctx, messages, temperature, llmStreamChan)
	}()

	var full strings.Builder
	var streamErr error
	for chunk := range llmStreamChan {
		if streamErr != nil {
			continue
		}
		if chunk.Error != "" {
			streamErr = errors.New(chunk.Error)
			continue
		}
		if chunk.Content != "" {
			full.WriteString(chunk.Content)
			streamChan <- model.StreamResponse{Content: chunk.Content}
		}
	}
	if err := <-errChan; err != nil && streamErr == nil {
		streamErr = err
	}

	if streamErr != nil {
		reply := llm.ErrorReply(streamErr)
		slog.Warn("Inference failed", "error", streamErr)
		streamChan <- model.StreamResponse{Error: reply}
		return reply
	}
	return full.String()
}

func mapRepoError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", app_errors.ErrNotFound, what)
	}
	return err
}

func truncate(s string, maxLen int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= maxLen {
		return string(runes)
	}
	return string(runes[:maxLen-3]) + "..."
}
