package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chatbench/internal/model"
)

type redisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) Repository {
	return &redisRepository{rdb: rdb}
}

// Key Generation Helpers
func (r *redisRepository) conversationKey(id string) string { return fmt.Sprintf("conversation:%s", id) }
func (r *redisRepository) turnsKey(id string) string        { return fmt.Sprintf("conversation:%s:turns", id) }
func (r *redisRepository) indexKey() string                 { return "conversations" }
func (r *redisRepository) settingsKey() string              { return "settings" }

// --- Conversation Operations ---
func (r *redisRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("could not marshal conversation: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.conversationKey(conv.ID), data, 0)
	pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(conv.UpdatedAt.UnixNano()), Member: conv.ID})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	data, err := r.rdb.Get(ctx, r.conversationKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var conv model.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("could not decode conversation %s: %w", id, err)
	}
	return &conv, nil
}

func (r *redisRepository) ListConversations(ctx context.Context) ([]*model.Conversation, error) {
	ids, err := r.rdb.ZRevRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	convs := make([]*model.Conversation, 0, len(ids))
	for _, id := range ids {
		conv, err := r.GetConversation(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		convs = append(convs, conv)
	}
	return convs, nil
}

func (r *redisRepository) DeleteConversation(ctx context.Context, id string) error {
	pipe := r.rdb.TxPipeline()
	deleted := pipe.Del(ctx, r.conversationKey(id))
	pipe.Del(ctx, r.turnsKey(id))
	pipe.ZRem(ctx, r.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute conversation deletion pipeline: %w", err)
	}
	if deleted.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Turn Operations ---
func (r *redisRepository) AppendTurn(ctx context.Context, conversationID string, turn *model.Turn) error {
	conv, err := r.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("could not marshal turn: %w", err)
	}

	conv.UpdatedAt = time.Now().UTC()
	convData, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("could not marshal conversation: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, r.turnsKey(conversationID), data)
	pipe.Set(ctx, r.conversationKey(conversationID), convData, 0)
	pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(conv.UpdatedAt.UnixNano()), Member: conversationID})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetTurns(ctx context.Context, conversationID string) ([]model.Turn, error) {
	items, err := r.rdb.LRange(ctx, r.turnsKey(conversationID), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.Turn{}, nil
		}
		return nil, err
	}
	turns := make([]model.Turn, 0, len(items))
	for _, item := range items {
		var turn model.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("could not decode turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (r *redisRepository) ClearTurns(ctx context.Context, conversationID string) error {
	return r.rdb.Del(ctx, r.turnsKey(conversationID)).Err()
}

// --- Settings Operations ---
func (r *redisRepository) LoadSettings(ctx context.Context) (map[string]string, error) {
	values, err := r.rdb.HGetAll(ctx, r.settingsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings from redis: %w", err)
	}
	return values, nil
}

func (r *redisRepository) SaveSettings(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	fields := make(map[string]any, len(values))
	for k, v := range values {
		fields[k] = v
	}
	return r.rdb.HSet(ctx, r.settingsKey(), fields).Err()
}
