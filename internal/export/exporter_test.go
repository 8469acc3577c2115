package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbench/internal/export"
	"chatbench/internal/model"
)

// fakeSheet records every backend interaction so tests can assert on call counts.
type fakeSheet struct {
	existing  [][]string
	readErr   error
	writeErr  error
	reads     int
	writes    int
	startCell string
	written   [][]any
}

func (s *fakeSheet) ReadAllRows(ctx context.Context) ([][]string, error) {
	s.reads++
	return s.existing, s.readErr
}

func (s *fakeSheet) WriteRows(ctx context.Context, startCell string, rows [][]any) error {
	s.writes++
	s.startCell = startCell
	s.written = rows
	return s.writeErr
}

type fakeBackend struct {
	sheet   *fakeSheet
	openErr error
	opens   int
	sheetID string
}

func (b *fakeBackend) Open(ctx context.Context, credentialsPath, sheetID string) (export.Sheet, error) {
	b.opens++
	b.sheetID = sheetID
	if b.openErr != nil {
		return nil, b.openErr
	}
	return b.sheet, nil
}

func writeCredentials(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600))
	return path
}

const sheetURL = "https://docs.google.com/spreadsheets/d/1mDtzoBDuow3YtV0OYxqZUsljPHZSUtP6yaUX1UuSF30/edit"

func newExporter(backend export.Backend) *export.Exporter {
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	return export.NewExporter(backend,
		export.WithClock(func() time.Time { return fixed }),
		export.WithIDGenerator(func() string { return "c0ffee42" }),
	)
}

func TestExporter_ExportTranscript(t *testing.T) {
	ctx := context.Background()
	turns := []model.Turn{
		{Role: model.RoleSystem, Content: "sys"},
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleAssistant, Content: "hello"},
		{Role: model.RoleUser, Content: "bye"},
	}

	t.Run("Success - appends after existing rows", func(t *testing.T) {
		sheet := &fakeSheet{existing: [][]string{{"timestamp", "uuid", "model_name", "prompt", "response"}, {"old"}}}
		backend := &fakeBackend{sheet: sheet}

		res := newExporter(backend).ExportTranscript(ctx, turns, "gemma.gguf", sheetURL, writeCredentials(t))

		require.True(t, res.Success, res.Message)
		assert.Equal(t, "Exported 2 conversation(s)", res.Message)
		assert.Equal(t, 3, res.StartRow)
		assert.Equal(t, "1mDtzoBDuow3YtV0OYxqZUsljPHZSUtP6yaUX1UuSF30", backend.sheetID)
		assert.Equal(t, 1, sheet.writes)
		assert.Equal(t, "A3", sheet.startCell)
		assert.Equal(t, [][]any{
			{"2026-10-19 12:00:00", "c0ffee42", "gemma.gguf", "hi", "hello"},
			{"2026-10-19 12:00:00", "c0ffee42", "gemma.gguf", "bye", ""},
		}, sheet.written)
	})

	t.Run("Success - empty sheet starts at row 2", func(t *testing.T) {
		sheet := &fakeSheet{}
		res := newExporter(&fakeBackend{sheet: sheet}).ExportTranscript(ctx, turns, "", sheetURL, writeCredentials(t))

		require.True(t, res.Success)
		assert.Equal(t, "A2", sheet.startCell)
		assert.Equal(t, "unknown", sheet.written[0][2])
	})

	t.Run("Success - nothing to write skips the write call", func(t *testing.T) {
		sheet := &fakeSheet{}
		res := newExporter(&fakeBackend{sheet: sheet}).ExportTranscript(ctx, nil, "m", sheetURL, writeCredentials(t))

		require.True(t, res.Success)
		assert.Equal(t, "Exported 0 conversation(s)", res.Message)
		assert.Equal(t, 1, sheet.reads)
		assert.Zero(t, sheet.writes)
	})
}

func TestExporter_Export_Failures(t *testing.T) {
	ctx := context.Background()
	rows := []export.Row{{Prompt: "p", Response: "r"}}

	t.Run("Invalid credentials make no backend calls", func(t *testing.T) {
		backend := &fakeBackend{sheet: &fakeSheet{}}
		missing := filepath.Join(t.TempDir(), "credentials.json")

		res := newExporter(backend).Export(ctx, rows, sheetURL, missing)

		assert.False(t, res.Success)
		assert.Equal(t, "Credentials file not found: "+missing, res.Message)
		assert.Zero(t, backend.opens)
		assert.Zero(t, backend.sheet.reads)
		assert.Zero(t, backend.sheet.writes)
	})

	t.Run("Malformed sheet identifier", func(t *testing.T) {
		backend := &fakeBackend{sheet: &fakeSheet{}}
		res := newExporter(backend).Export(ctx, rows, "no such sheet!", writeCredentials(t))

		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "malformed sheet identifier")
		assert.Zero(t, backend.opens)
	})

	t.Run("Authorization failure on open", func(t *testing.T) {
		backend := &fakeBackend{openErr: errors.New("403 forbidden")}
		res := newExporter(backend).Export(ctx, rows, sheetURL, writeCredentials(t))

		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "403 forbidden")
	})

	t.Run("Batch write failure reports no rows", func(t *testing.T) {
		sheet := &fakeSheet{writeErr: errors.New("quota exceeded")}
		res := newExporter(&fakeBackend{sheet: sheet}).Export(ctx, rows, sheetURL, writeCredentials(t))

		assert.False(t, res.Success)
		assert.Zero(t, res.Rows)
		assert.Contains(t, res.Message, "quota exceeded")
		assert.Equal(t, 1, sheet.writes)
	})

	t.Run("Read failure", func(t *testing.T) {
		sheet := &fakeSheet{readErr: errors.New("network unreachable")}
		res := newExporter(&fakeBackend{sheet: sheet}).Export(ctx, rows, sheetURL, writeCredentials(t))

		assert.False(t, res.Success)
		assert.Zero(t, sheet.writes)
	})
}

func TestShortID(t *testing.T) {
	id := export.ShortID()
	assert.Len(t, id, 8)
	assert.NotEqual(t, id, export.ShortID())
}
