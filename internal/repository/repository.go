package repository

import (
	"context"

	"chatbench/internal/model"
)

// Repository stores conversations, their turns and the key/value settings.
// Both the SQLite and the Redis implementation satisfy it.
type Repository interface {
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	GetConversation(ctx context.Context, id string) (*model.Conversation, error)
	ListConversations(ctx context.Context) ([]*model.Conversation, error)
	DeleteConversation(ctx context.Context, id string) error

	// AppendTurn adds turn at the end of the conversation and bumps its
	// updated_at. Turns are never edited afterwards.
	AppendTurn(ctx context.Context, conversationID string, turn *model.Turn) error
	GetTurns(ctx context.Context, conversationID string) ([]model.Turn, error)
	ClearTurns(ctx context.Context, conversationID string) error

	LoadSettings(ctx context.Context) (map[string]string, error)
	SaveSettings(ctx context.Context, values map[string]string) error
}
