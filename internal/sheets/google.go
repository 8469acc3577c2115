// Package sheets implements the export backend on the Google Sheets API v4.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	app_errors "chatbench/internal/errors"
	"chatbench/internal/export"
)

// Scopes granted to the service account: spreadsheet read/write plus drive.
var Scopes = []string{
	gsheets.SpreadsheetsScope,
	"https://www.googleapis.com/auth/drive",
}

// Backend opens spreadsheets with service-account credentials.
type Backend struct {
	options func(credentialsPath string) []option.ClientOption
}

// New returns a backend that authenticates with the credential file passed to Open.
func New() *Backend {
	return &Backend{
		options: func(credentialsPath string) []option.ClientOption {
			return []option.ClientOption{
				option.WithCredentialsFile(credentialsPath),
				option.WithScopes(Scopes...),
			}
		},
	}
}

// NewWithOptions ignores the credential path and uses opts verbatim. It is
// meant for emulators and tests.
func NewWithOptions(opts ...option.ClientOption) *Backend {
	return &Backend{
		options: func(string) []option.ClientOption { return opts },
	}
}

// Open locates the spreadsheet and selects its first worksheet.
func (b *Backend) Open(ctx context.Context, credentialsPath, sheetID string) (export.Sheet, error) {
	svc, err := gsheets.NewService(ctx, b.options(credentialsPath)...)
	if err != nil {
		return nil, fmt.Errorf("%w: authorize: %v", app_errors.ErrBackend, err)
	}

	ss, err := svc.Spreadsheets.Get(sheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: open spreadsheet %s: %v", app_errors.ErrBackend, sheetID, err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return nil, fmt.Errorf("%w: spreadsheet %s has no worksheets", app_errors.ErrBackend, sheetID)
	}

	return &worksheet{
		svc:     svc,
		sheetID: sheetID,
		title:   ss.Sheets[0].Properties.Title,
	}, nil
}

type worksheet struct {
	svc     *gsheets.Service
	sheetID string
	title   string
}

// quotedTitle renders the worksheet name for A1 notation.
func (w *worksheet) quotedTitle() string {
	return "'" + strings.ReplaceAll(w.title, "'", "''") + "'"
}

func (w *worksheet) ReadAllRows(ctx context.Context) ([][]string, error) {
	resp, err := w.svc.Spreadsheets.Values.Get(w.sheetID, w.quotedTitle()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read values: %v", app_errors.ErrBackend, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		rows[i] = cells
	}
	return rows, nil
}

func (w *worksheet) WriteRows(ctx context.Context, startCell string, rows [][]any) error {
	rng := w.quotedTitle() + "!" + startCell
	vr := &gsheets.ValueRange{Values: rows}
	_, err := w.svc.Spreadsheets.Values.Update(w.sheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", app_errors.ErrBackend, rng, err)
	}
	return nil
}
