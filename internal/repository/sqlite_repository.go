package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"chatbench/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	query := "INSERT INTO conversations (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, conv.ID, conv.Title, conv.CreatedAt, conv.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	query := "SELECT id, title, created_at, updated_at FROM conversations WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, id)
	var conv model.Conversation
	if err := row.Scan(&conv.ID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *sqliteRepository) ListConversations(ctx context.Context) ([]*model.Conversation, error) {
	query := "SELECT id, title, created_at, updated_at FROM conversations ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	convs := []*model.Conversation{}
	for rows.Next() {
		var conv model.Conversation
		if err := rows.Scan(&conv.ID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, err
		}
		convs = append(convs, &conv)
	}
	return convs, rows.Err()
}

func (r *sqliteRepository) DeleteConversation(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM turns WHERE conversation_id = ?", id); err != nil {
		return fmt.Errorf("could not delete turns: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("could not delete conversation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (r *sqliteRepository) AppendTurn(ctx context.Context, conversationID string, turn *model.Turn) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, "UPDATE conversations SET updated_at = ? WHERE id = ?", time.Now().UTC(), conversationID)
	if err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	query := "INSERT INTO turns (id, conversation_id, role, content, timestamp) VALUES (?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, query, turn.ID, conversationID, string(turn.Role), turn.Content, turn.Timestamp); err != nil {
		return fmt.Errorf("could not insert turn: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetTurns(ctx context.Context, conversationID string) ([]model.Turn, error) {
	query := "SELECT id, role, content, timestamp FROM turns WHERE conversation_id = ? ORDER BY seq ASC"
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := []model.Turn{}
	for rows.Next() {
		var turn model.Turn
		var role string
		if err := rows.Scan(&turn.ID, &role, &turn.Content, &turn.Timestamp); err != nil {
			return nil, err
		}
		turn.Role = model.Role(role)
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}

func (r *sqliteRepository) ClearTurns(ctx context.Context, conversationID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM turns WHERE conversation_id = ?", conversationID)
	return err
}

func (r *sqliteRepository) LoadSettings(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting row: %w", err)
		}
		values[key] = value
	}
	return values, rows.Err()
}

// SaveSettings upserts every key in a single transaction. Keys are written in
// sorted order.
func (r *sqliteRepository) SaveSettings(ctx context.Context, values map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := stmt.ExecContext(ctx, k, values[k]); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", k, err)
		}
	}

	return tx.Commit()
}
