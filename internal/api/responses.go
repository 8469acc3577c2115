package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "chatbench/internal/errors"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse acknowledges a request that returns no resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// CreateConversationRequest is the DTO for starting an empty conversation.
type CreateConversationRequest struct {
	Title string `json:"title" validate:"max=100" example:"Qwen smoke test"`
}

// SendMessageRequest is the body of the streaming message endpoint.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required" example:"Hello, how are you?"`
}

// respondWithError maps service errors to status codes. Validation-type
// messages are passed through; everything else gets a generic message and
// the detail goes to the log.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation),
		errors.Is(err, app_errors.ErrInput),
		errors.Is(err, app_errors.ErrCredential):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, app_errors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A conflict occurred with the current state of the resource."
	case errors.Is(err, app_errors.ErrPermission):
		statusCode = http.StatusForbidden
		message = "You do not have permission to perform this action."
	case errors.Is(err, app_errors.ErrBackend):
		statusCode = http.StatusBadGateway
		message = "An upstream service failed."
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)
	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// sendStreamError writes an `event: error` frame so SSE clients can listen
// for failures separately from data.
func sendStreamError(w http.ResponseWriter, message string) {
	slog.Warn("Sending stream error to client", "message", message)
	jsonData, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		slog.Error("Failed to marshal stream error payload", "error", err)
		return
	}
	if _, err := fmt.Fprintf(w, "event: error\ndata: %s\n\n", string(jsonData)); err != nil {
		slog.Warn("Failed to write stream error, client might have disconnected", "error", err)
		return
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// writeStreamEvent writes one SSE data frame. A returned error means the
// client is gone.
func writeStreamEvent(w http.ResponseWriter, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		return nil
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", string(jsonData)); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// decodeAndValidate reads a JSON body into dst and runs the validator on it.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation)
	}
	return validateRequest(dst)
}
