package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	app_errors "chatbench/internal/errors"
	"chatbench/internal/model"
)

// Backend opens spreadsheets on a remote service.
type Backend interface {
	Open(ctx context.Context, credentialsPath, sheetID string) (Sheet, error)
}

// Sheet is the worksheet rows are appended to.
type Sheet interface {
	ReadAllRows(ctx context.Context) ([][]string, error)
	WriteRows(ctx context.Context, startCell string, rows [][]any) error
}

// Result is the outcome of one export call. Failures are reported here and
// never returned as errors.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Rows     int    `json:"rows"`
	StartRow int    `json:"start_row,omitempty"`
}

// Exporter appends transcript rows to a spreadsheet in one batch.
type Exporter struct {
	backend Backend
	now     func() time.Time
	newID   func() string
	logger  *slog.Logger
}

// Option customises an Exporter.
type Option func(*Exporter)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// WithIDGenerator overrides the conversation id source.
func WithIDGenerator(newID func() string) Option {
	return func(e *Exporter) { e.newID = newID }
}

// WithLogger sets the logger used for failed exports.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) { e.logger = logger }
}

func NewExporter(backend Backend, opts ...Option) *Exporter {
	e := &Exporter{
		backend: backend,
		now:     time.Now,
		newID:   ShortID,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ShortID returns the first eight characters of a random UUID.
func ShortID() string {
	return uuid.NewString()[:8]
}

// ExportTranscript builds rows from turns with a single timestamp and
// conversation id, then exports them.
func (e *Exporter) ExportTranscript(ctx context.Context, turns []model.Turn, modelName, sheetRef, credentialsPath string) Result {
	rows := BuildRows(turns, e.newID(), e.now(), modelName)
	return e.Export(ctx, rows, sheetRef, credentialsPath)
}

// Export validates credentials, resolves the sheet, finds the first free
// row by re-reading the sheet and writes all rows in one call. A failed
// write means no row is considered written.
func (e *Exporter) Export(ctx context.Context, rows []Row, sheetRef, credentialsPath string) Result {
	if err := CheckCredentials(credentialsPath); err != nil {
		e.logger.Warn("Export rejected: invalid credentials", "path", credentialsPath, "error", err)
		return Result{Message: err.Error()}
	}

	sheetID, err := ParseSheetID(sheetRef)
	if err != nil {
		return e.fail(err)
	}

	sheet, err := e.backend.Open(ctx, credentialsPath, sheetID)
	if err != nil {
		return e.fail(wrapBackend("open sheet", err))
	}

	existing, err := sheet.ReadAllRows(ctx)
	if err != nil {
		return e.fail(wrapBackend("read rows", err))
	}
	next := NextRow(len(existing))

	if len(rows) > 0 {
		values := make([][]any, len(rows))
		for i, r := range rows {
			values[i] = r.Values()
		}
		if err := sheet.WriteRows(ctx, fmt.Sprintf("A%d", next), values); err != nil {
			return e.fail(wrapBackend("write rows", err))
		}
	}

	e.logger.Info("Exported transcript", "sheet_id", sheetID, "rows", len(rows), "start_row", next)
	return Result{
		Success:  true,
		Message:  fmt.Sprintf("Exported %d conversation(s)", len(rows)),
		Rows:     len(rows),
		StartRow: next,
	}
}

func (e *Exporter) fail(err error) Result {
	e.logger.Error("Export failed", "error", err)
	return Result{Message: fmt.Sprintf("Error: %v", err)}
}

func wrapBackend(op string, err error) error {
	if errors.Is(err, app_errors.ErrBackend) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, app_errors.ErrBackend, err)
}
