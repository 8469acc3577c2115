package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatbench/internal/api"
	app_errors "chatbench/internal/errors"
	"chatbench/internal/hub"
	"chatbench/internal/interfaces/mocks"
	"chatbench/internal/service"
)

func setupModelHandler(t *testing.T) (*api.ModelHandler, *mocks.MockModelService) {
	mockModelSvc := mocks.NewMockModelService(t)
	return api.NewModelHandler(mockModelSvc), mockModelSvc
}

func TestModelHandler_HandleListLocal(t *testing.T) {
	testCases := []struct {
		name           string
		setupMock      func(*mocks.MockModelService)
		expectedStatus int
	}{
		{
			name: "Success",
			setupMock: func(m *mocks.MockModelService) {
				m.On("ListLocal", mock.Anything).Return([]service.ModelInfo{{Name: "a.gguf", Exists: true}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Failure - Service Error",
			setupMock: func(m *mocks.MockModelService) {
				m.On("ListLocal", mock.Anything).Return(nil, errors.New("permission denied")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler, mockModelSvc := setupModelHandler(t)
			tc.setupMock(mockModelSvc)

			rr := httptest.NewRecorder()
			handler.HandleListLocal(rr, httptest.NewRequest(http.MethodGet, "/v1/models/local", nil))

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestModelHandler_HandleInspect(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockModelSvc := setupModelHandler(t)
		mockModelSvc.On("Inspect", mock.Anything, "/models/a.gguf").
			Return(&service.ModelInfo{Path: "/models/a.gguf", Exists: true, SizeGB: 0.6}, nil).Once()

		rr := httptest.NewRecorder()
		handler.HandleInspect(rr, httptest.NewRequest(http.MethodGet, "/v1/models/inspect?path=/models/a.gguf", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var info service.ModelInfo
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
		assert.True(t, info.Exists)
		assert.InDelta(t, 0.6, info.SizeGB, 1e-9)
	})

	t.Run("Failure - Missing path", func(t *testing.T) {
		handler, mockModelSvc := setupModelHandler(t)
		mockModelSvc.On("Inspect", mock.Anything, "").Return(nil, app_errors.ErrValidation).Once()

		rr := httptest.NewRecorder()
		handler.HandleInspect(rr, httptest.NewRequest(http.MethodGet, "/v1/models/inspect", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestModelHandler_HandleHubFiles(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockModelSvc := setupModelHandler(t)
		mockModelSvc.On("ListHubFiles", mock.Anything, "Qwen/Qwen3-0.6B-GGUF").Return([]string{"Qwen3-0.6B-Q8_0.gguf"}, nil).Once()

		rr := httptest.NewRecorder()
		handler.HandleHubFiles(rr, httptest.NewRequest(http.MethodGet, "/v1/hub/files?repo=Qwen/Qwen3-0.6B-GGUF", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"repo":"Qwen/Qwen3-0.6B-GGUF","files":["Qwen3-0.6B-Q8_0.gguf"]}`, rr.Body.String())
	})

	t.Run("Failure - No repository", func(t *testing.T) {
		handler, _ := setupModelHandler(t)

		rr := httptest.NewRecorder()
		handler.HandleHubFiles(rr, httptest.NewRequest(http.MethodGet, "/v1/hub/files", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Enter a repository ID first")
	})

	t.Run("Failure - Unknown repository", func(t *testing.T) {
		handler, mockModelSvc := setupModelHandler(t)
		mockModelSvc.On("ListHubFiles", mock.Anything, "a/b").Return(nil, app_errors.ErrNotFound).Once()

		rr := httptest.NewRecorder()
		handler.HandleHubFiles(rr, httptest.NewRequest(http.MethodGet, "/v1/hub/files?repo=a/b", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestModelHandler_HandleDownload(t *testing.T) {
	t.Run("Success - streams progress", func(t *testing.T) {
		handler, mockModelSvc := setupModelHandler(t)
		expectedReq := &hub.DownloadRequest{RepoID: "ggml-org/gemma-3-1b-it-GGUF", Filename: "gemma-3-1b-it-Q4_K_M.gguf"}

		mockModelSvc.On("Download", mock.Anything, expectedReq, mock.Anything).
			Run(func(args mock.Arguments) {
				ch := args.Get(2).(chan<- hub.DownloadStatus)
				ch <- hub.DownloadStatus{Status: "downloading", Total: 100, Completed: 50}
				ch <- hub.DownloadStatus{Status: "success", Path: "models/x.gguf"}
				close(ch)
			}).Return(nil).Once()

		body := `{"repo_id":"ggml-org/gemma-3-1b-it-GGUF","filename":"gemma-3-1b-it-Q4_K_M.gguf"}`
		rr := httptest.NewRecorder()
		handler.HandleDownload(rr, httptest.NewRequest(http.MethodPost, "/v1/hub/download", strings.NewReader(body)))

		assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Body.String(), `"status":"downloading"`)
		assert.Contains(t, rr.Body.String(), `"status":"success"`)
	})

	testCases := []struct {
		name string
		body string
	}{
		{"Missing filename", `{"repo_id":"a/b"}`},
		{"Malformed repository", `{"repo_id":"not a repo","filename":"x.gguf"}`},
		{"Invalid JSON", `{`},
	}
	for _, tc := range testCases {
		t.Run("Failure - "+tc.name, func(t *testing.T) {
			handler, _ := setupModelHandler(t)

			rr := httptest.NewRecorder()
			handler.HandleDownload(rr, httptest.NewRequest(http.MethodPost, "/v1/hub/download", strings.NewReader(tc.body)))

			assert.Contains(t, rr.Body.String(), "event: error")
			assert.Contains(t, rr.Body.String(), "Please provide both Repository ID and Filename")
		})
	}
}
