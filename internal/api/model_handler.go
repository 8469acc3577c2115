package api

import (
	"fmt"
	"log/slog"
	"net/http"

	app_errors "chatbench/internal/errors"
	"chatbench/internal/hub"
	"chatbench/internal/interfaces"
)

// ModelHandler handles local model files and Hub downloads.
type ModelHandler struct {
	service interfaces.ModelService
}

func NewModelHandler(svc interfaces.ModelService) *ModelHandler {
	return &ModelHandler{service: svc}
}

// HubFilesResponse lists the GGUF files of a Hub repository.
type HubFilesResponse struct {
	Repo  string   `json:"repo"`
	Files []string `json:"files"`
}

// HandleListLocal godoc
// @Summary      List local models
// @Description  Lists the GGUF files found under the models directory.
// @Tags         Models
// @Produce      json
// @Success      200  {array}   service.ModelInfo
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/models/local [get]
func (h *ModelHandler) HandleListLocal(w http.ResponseWriter, r *http.Request) {
	models, err := h.service.ListLocal(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models)
}

// HandleInspect godoc
// @Summary      Inspect a model path
// @Description  Reports whether a model file exists and its size in GB.
// @Tags         Models
// @Produce      json
// @Param        path  query     string  true  "Model file path"
// @Success      200   {object}  service.ModelInfo
// @Failure      400   {object}  ErrorResponse
// @Router       /v1/models/inspect [get]
func (h *ModelHandler) HandleInspect(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Inspect(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, info)
}

// HandleHubFiles godoc
// @Summary      Browse Hub files
// @Description  Lists the GGUF files of a Hugging Face repository.
// @Tags         Hub
// @Produce      json
// @Param        repo  query     string  true  "Repository ID, e.g. Qwen/Qwen3-0.6B-GGUF"
// @Success      200   {object}  HubFilesResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /v1/hub/files [get]
func (h *ModelHandler) HandleHubFiles(w http.ResponseWriter, r *http.Request) {
	repo := r.URL.Query().Get("repo")
	if repo == "" {
		respondWithError(w, fmt.Errorf("%w: Enter a repository ID first", app_errors.ErrValidation))
		return
	}
	files, err := h.service.ListHubFiles(r.Context(), repo)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, HubFilesResponse{Repo: repo, Files: files})
}

// HandleDownload godoc
// @Summary      Download a model
// @Description  Downloads a GGUF file from the Hub and selects it. This is a streaming endpoint.
// @Tags         Hub
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body      hub.DownloadRequest   true  "Repository and file"
// @Success      200      {object}  hub.DownloadStatus    "Stream of progress status"
// @Failure      400      {object}  ErrorResponse         "Sent as a stream error event"
// @Router       /v1/hub/download [post]
func (h *ModelHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	setStreamHeaders(w)

	var req hub.DownloadRequest
	if err := decodeAndValidate(r, &req); err != nil {
		sendStreamError(w, "Please provide both Repository ID and Filename")
		return
	}

	streamChan := make(chan hub.DownloadStatus)
	go func() {
		if err := h.service.Download(r.Context(), &req, streamChan); err != nil {
			slog.Error("Model download failed", "repo", req.RepoID, "file", req.Filename, "error", err)
		}
	}()

	clientGone := false
	for status := range streamChan {
		if clientGone {
			continue
		}
		if err := writeStreamEvent(w, status); err != nil {
			slog.Warn("Could not write to download stream, client likely disconnected.", "error", err)
			clientGone = true
		}
	}
}
