package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbench/internal/database"
	"chatbench/internal/model"
	"chatbench/internal/repository"
)

func newSQLiteRepo(t *testing.T) repository.Repository {
	t.Helper()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewSQLiteRepository(db)
}

func newRedisRepo(t *testing.T) repository.Repository {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return repository.NewRedisRepository(rdb)
}

func TestRepositories(t *testing.T) {
	backends := map[string]func(*testing.T) repository.Repository{
		"sqlite": newSQLiteRepo,
		"redis":  newRedisRepo,
	}
	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			t.Run("Conversation lifecycle", func(t *testing.T) { testConversationLifecycle(t, newRepo(t)) })
			t.Run("Turns keep order", func(t *testing.T) { testTurnOrder(t, newRepo(t)) })
			t.Run("Settings upsert", func(t *testing.T) { testSettings(t, newRepo(t)) })
		})
	}
}

func testConversationLifecycle(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	older := &model.Conversation{ID: "c1", Title: "first", CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour)}
	newer := &model.Conversation{ID: "c2", Title: "second", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.CreateConversation(ctx, older))
	require.NoError(t, repo.CreateConversation(ctx, newer))

	got, err := repo.GetConversation(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	list, err := repo.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c2", list[0].ID)

	_, err = repo.GetConversation(ctx, "missing")
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	require.NoError(t, repo.AppendTurn(ctx, "c1", &model.Turn{ID: "t1", Role: model.RoleUser, Content: "hi", Timestamp: now}))
	require.NoError(t, repo.DeleteConversation(ctx, "c1"))

	_, err = repo.GetConversation(ctx, "c1")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	turns, err := repo.GetTurns(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, turns)

	assert.True(t, errors.Is(repo.DeleteConversation(ctx, "c1"), repository.ErrNotFound))
}

func testTurnOrder(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	ts := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.CreateConversation(ctx, &model.Conversation{ID: "c", Title: "t", CreatedAt: ts, UpdatedAt: ts}))

	// Identical timestamps must not reorder turns.
	contents := []string{"q1", "a1", "q2", "a2", "q3"}
	for i, c := range contents {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		require.NoError(t, repo.AppendTurn(ctx, "c", &model.Turn{ID: c, Role: role, Content: c, Timestamp: ts}))
	}

	turns, err := repo.GetTurns(ctx, "c")
	require.NoError(t, err)
	require.Len(t, turns, len(contents))
	for i, turn := range turns {
		assert.Equal(t, contents[i], turn.Content)
	}
	assert.Equal(t, model.RoleAssistant, turns[1].Role)

	err = repo.AppendTurn(ctx, "missing", &model.Turn{ID: "x", Role: model.RoleUser, Content: "x", Timestamp: ts})
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	require.NoError(t, repo.ClearTurns(ctx, "c"))
	turns, err = repo.GetTurns(ctx, "c")
	require.NoError(t, err)
	assert.Empty(t, turns)

	_, err = repo.GetConversation(ctx, "c")
	assert.NoError(t, err)
}

func testSettings(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	values, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, repo.SaveSettings(ctx, map[string]string{"system_prompt": "a", "temperature": "0.7"}))
	require.NoError(t, repo.SaveSettings(ctx, map[string]string{"system_prompt": "b"}))

	values, err = repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"system_prompt": "b", "temperature": "0.7"}, values)
}

func TestSQLiteRepository_ErrorPaths(t *testing.T) {
	ctx := context.Background()

	t.Run("SaveSettings rolls back on exec failure", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		repo := repository.NewSQLiteRepository(db)

		mockDB.ExpectBegin()
		prep := mockDB.ExpectPrepare("INSERT INTO settings")
		prep.ExpectExec().WithArgs("model_path", "/m.gguf").WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().WithArgs("system_prompt", "p").WillReturnError(errors.New("disk full"))
		mockDB.ExpectRollback()

		err = repo.SaveSettings(ctx, map[string]string{"system_prompt": "p", "model_path": "/m.gguf"})
		assert.ErrorContains(t, err, "failed to save setting system_prompt")
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("AppendTurn on unknown conversation", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		repo := repository.NewSQLiteRepository(db)

		mockDB.ExpectBegin()
		mockDB.ExpectExec(regexp.QuoteMeta("UPDATE conversations SET updated_at = ? WHERE id = ?")).
			WithArgs(sqlmock.AnyArg(), "nope").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mockDB.ExpectRollback()

		err = repo.AppendTurn(ctx, "nope", &model.Turn{ID: "t", Role: model.RoleUser, Content: "x"})
		assert.True(t, errors.Is(err, repository.ErrNotFound))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("LoadSettings query failure", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		repo := repository.NewSQLiteRepository(db)

		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnError(errors.New("locked"))

		_, err = repo.LoadSettings(ctx)
		assert.ErrorContains(t, err, "failed to query settings")
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}
