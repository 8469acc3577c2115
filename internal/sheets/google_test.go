package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	app_errors "chatbench/internal/errors"
)

// fakeSheetsAPI stands in for sheets.googleapis.com.
func fakeSheetsAPI(t *testing.T, status int, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/values/"):
			_, _ = w.Write([]byte(`{"values":[["timestamp","uuid"],["x","y"]]}`))
		case r.Method == http.MethodPut && strings.Contains(r.URL.Path, "/values/"):
			assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
			assert.True(t, strings.HasSuffix(r.URL.Path, "'Sheet1'!A3"), r.URL.Path)
			body := map[string]any{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			*captured = body
			_, _ = w.Write([]byte(`{"updatedRows":1}`))
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"spreadsheetId":"abc","sheets":[{"properties":{"title":"Sheet1"}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func testBackend(server *httptest.Server) *Backend {
	return NewWithOptions(
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
}

func TestBackend_ReadAndWrite(t *testing.T) {
	var captured map[string]any
	server := fakeSheetsAPI(t, http.StatusOK, &captured)
	defer server.Close()

	ctx := context.Background()
	sheet, err := testBackend(server).Open(ctx, "ignored.json", "abc")
	require.NoError(t, err)

	rows, err := sheet.ReadAllRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"timestamp", "uuid"}, {"x", "y"}}, rows)

	err = sheet.WriteRows(ctx, "A3", [][]any{{"2026-10-19 12:00:00", "c0ffee42", "m", "p", "r"}})
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, []any{[]any{"2026-10-19 12:00:00", "c0ffee42", "m", "p", "r"}}, captured["values"])
}

func TestBackend_OpenForbidden(t *testing.T) {
	server := fakeSheetsAPI(t, http.StatusForbidden, nil)
	defer server.Close()

	_, err := testBackend(server).Open(context.Background(), "ignored.json", "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, app_errors.ErrBackend))
}

func TestQuotedTitle(t *testing.T) {
	w := &worksheet{title: "Bob's Sheet"}
	assert.Equal(t, "'Bob''s Sheet'", w.quotedTitle())
}
