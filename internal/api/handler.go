package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chatbench/internal/interfaces"
	"chatbench/internal/model"
	"chatbench/internal/service"
)

// ChatHandler serves settings, conversations and the message stream.
type ChatHandler struct {
	chatService     interfaces.ChatService
	settingsService interfaces.SettingsService
}

func NewChatHandler(chatSvc interfaces.ChatService, settingsSvc interfaces.SettingsService) *ChatHandler {
	return &ChatHandler{chatService: chatSvc, settingsService: settingsSvc}
}

// GetSettings godoc
// @Summary      Get settings
// @Description  Returns the model path, temperature and system prompt used for new replies.
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  service.Settings
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/settings [get]
func (h *ChatHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary      Update settings
// @Description  Validates and stores the settings. The model path must exist on disk.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        settings  body      service.Settings  true  "New settings"
// @Success      200       {object}  StatusResponse
// @Failure      400       {object}  ErrorResponse
// @Router       /v1/settings [post]
func (h *ChatHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req service.Settings
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.settingsService.Save(r.Context(), &req); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ListConversations godoc
// @Summary      List conversations
// @Tags         Conversations
// @Produce      json
// @Success      200  {array}   model.Conversation
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/conversations [get]
func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := h.chatService.ListConversations(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, convs)
}

// CreateConversation godoc
// @Summary      Create a conversation
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        request  body      CreateConversationRequest  true  "Optional title"
// @Success      201      {object}  model.Conversation
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/conversations [post]
func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req CreateConversationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	conv, err := h.chatService.CreateConversation(r.Context(), req.Title)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, conv)
}

// GetConversation godoc
// @Summary      Get a conversation transcript
// @Tags         Conversations
// @Produce      json
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  model.Transcript
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/conversations/{id} [get]
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	transcript, err := h.chatService.GetTranscript(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, transcript)
}

// DeleteConversation godoc
// @Summary      Delete a conversation
// @Tags         Conversations
// @Produce      json
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/conversations/{id} [delete]
func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.chatService.DeleteConversation(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ClearConversation godoc
// @Summary      Clear chat
// @Description  Removes every turn of the conversation and keeps the conversation.
// @Tags         Conversations
// @Produce      json
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/conversations/{id}/turns [delete]
func (h *ChatHandler) ClearConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.chatService.ClearConversation(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleStreamMessage godoc
// @Summary      Send a message
// @Description  Appends the user message and streams the assistant reply as server-sent events. Use "new" as the ID to start a conversation.
// @Tags         Conversations
// @Accept       json
// @Produce      text/event-stream
// @Param        id       path      string              true  "Conversation ID or new"
// @Param        request  body      SendMessageRequest  true  "User message"
// @Success      200      {object}  model.StreamResponse  "Stream of reply chunks"
// @Failure      400      {object}  ErrorResponse         "Sent as a stream error event"
// @Router       /v1/conversations/{id}/messages [post]
func (h *ChatHandler) HandleStreamMessage(w http.ResponseWriter, r *http.Request) {
	setStreamHeaders(w)

	var body SendMessageRequest
	if err := decodeAndValidate(r, &body); err != nil {
		sendStreamError(w, err.Error())
		return
	}

	req := &service.CreateMessageRequest{ConversationID: chi.URLParam(r, "id"), Content: body.Content}
	if req.ConversationID == "new" {
		req.ConversationID = ""
	}

	streamChan := make(chan model.StreamResponse)
	// The reply is generated and stored even if the client goes away.
	go h.chatService.HandleNewMessage(context.WithoutCancel(r.Context()), req, streamChan)

	clientGone := false
	for chunk := range streamChan {
		// Keep draining after a disconnect so the service can finish.
		if clientGone {
			continue
		}
		if chunk.Error != "" {
			sendStreamError(w, chunk.Error)
			continue
		}
		if err := writeStreamEvent(w, chunk); err != nil {
			slog.Info("Client disconnected during message stream", "error", err)
			clientGone = true
		}
	}
}
