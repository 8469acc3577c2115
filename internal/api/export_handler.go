package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"chatbench/internal/interfaces"
	"chatbench/internal/service"
)

// ExportHandler writes conversation transcripts to Google Sheets.
type ExportHandler struct {
	service interfaces.ExportService
}

func NewExportHandler(svc interfaces.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// HandleExport godoc
// @Summary      Export to Google Sheets
// @Description  Appends one row per prompt/response pair after the last used row of the first worksheet.
// @Tags         Export
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Conversation ID"
// @Param        request  body      service.ExportRequest  true  "Sheet URL or ID"
// @Success      200      {object}  export.Result
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      502      {object}  export.Result
// @Router       /v1/conversations/{id}/export [post]
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var req service.ExportRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	result, err := h.service.Export(r.Context(), chi.URLParam(r, "id"), req.Sheet)
	if err != nil {
		respondWithError(w, err)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	respondWithJSON(w, status, result)
}
