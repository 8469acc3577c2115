package service_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "chatbench/internal/errors"
	"chatbench/internal/repository"
	"chatbench/internal/service"
)

var defaultSettings = service.Settings{
	Temperature:  0.7,
	SystemPrompt: "You are a helpful AI assistant.",
}

func setupSettingsService(t *testing.T) (*service.SettingsService, *sql.DB, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)

	settingsService := service.NewSettingsService(repository.NewSQLiteRepository(db), defaultSettings)
	return settingsService, db, mockDB
}

func TestSettingsService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Get existing settings", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		rows := sqlmock.NewRows([]string{"key", "value"}).
			AddRow("model_path", "/models/qwen.gguf").
			AddRow("temperature", "1.3").
			AddRow("system_prompt", "be brief")
		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnRows(rows)

		settings, err := settingsService.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "/models/qwen.gguf", settings.ModelPath)
		assert.InDelta(t, 1.3, settings.Temperature, 1e-9)
		assert.Equal(t, "be brief", settings.SystemPrompt)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Success - Defaults for missing keys", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		rows := sqlmock.NewRows([]string{"key", "value"}).AddRow("temperature", "not-a-number")
		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnRows(rows)

		settings, err := settingsService.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, defaultSettings, *settings)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - DB error", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnError(errors.New("db is locked"))

		_, err := settingsService.Get(ctx)
		assert.ErrorContains(t, err, "db is locked")
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestSettingsService_InitAndGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes defaults on first start", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))
		mockDB.ExpectBegin()
		prep := mockDB.ExpectPrepare("INSERT INTO settings")
		prep.ExpectExec().WithArgs("model_path", "").WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().WithArgs("system_prompt", "You are a helpful AI assistant.").WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().WithArgs("temperature", "0.7").WillReturnResult(sqlmock.NewResult(1, 1))
		mockDB.ExpectCommit()

		settings, err := settingsService.InitAndGet(ctx)
		require.NoError(t, err)
		assert.Equal(t, defaultSettings, *settings)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Keeps complete settings untouched", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		rows := sqlmock.NewRows([]string{"key", "value"}).
			AddRow("model_path", "").
			AddRow("temperature", "0.2").
			AddRow("system_prompt", "x")
		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnRows(rows)

		settings, err := settingsService.InitAndGet(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 0.2, settings.Temperature, 1e-9)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestSettingsService_Save(t *testing.T) {
	ctx := context.Background()
	modelFile := filepath.Join(t.TempDir(), "tiny.gguf")
	require.NoError(t, os.WriteFile(modelFile, []byte("GGUF"), 0o600))

	t.Run("Success", func(t *testing.T) {
		settingsService, db, mockDB := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		mockDB.ExpectBegin()
		prep := mockDB.ExpectPrepare("INSERT INTO settings")
		prep.ExpectExec().WithArgs("model_path", modelFile).WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().WithArgs("system_prompt", "p").WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().WithArgs("temperature", "1.5").WillReturnResult(sqlmock.NewResult(1, 1))
		mockDB.ExpectCommit()

		err := settingsService.Save(ctx, &service.Settings{ModelPath: " " + modelFile + " ", Temperature: 1.5, SystemPrompt: "p"})
		require.NoError(t, err)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	testCases := []struct {
		name     string
		settings service.Settings
		errText  string
	}{
		{"Temperature too high", service.Settings{Temperature: 2.1}, "temperature must be between"},
		{"Temperature negative", service.Settings{Temperature: -0.1}, "temperature must be between"},
		{"Missing model file", service.Settings{ModelPath: "/nope/model.gguf", Temperature: 0.7}, "Model not found at: /nope/model.gguf"},
		{"Model path is a directory", service.Settings{ModelPath: t.TempDir(), Temperature: 0.7}, "Model not found at"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			settingsService, db, mockDB := setupSettingsService(t)
			defer func() { _ = db.Close() }()

			err := settingsService.Save(ctx, &tc.settings)
			require.Error(t, err)
			assert.True(t, errors.Is(err, app_errors.ErrValidation))
			assert.ErrorContains(t, err, tc.errText)
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}
