// Package chat exposes the Q&A endpoints: the structured chatwithai call,
// conversation history, likes and image captioning.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/askmatic/askly-server/internal/middleware"
	chatservice "github.com/askmatic/askly-server/internal/service/chat"
	"github.com/askmatic/askly-server/internal/storage"
	"github.com/askmatic/askly-server/pkg/utils"
)

// fallbackMessage is all a client learns about an upstream failure.
const fallbackMessage = "Sorry, I'm having trouble responding. Please try again later."

// Captioner describes an uploaded image for the student.
type Captioner interface {
	Caption(ctx context.Context, imageBase64 string) (string, error)
}

// Handler serves the chat routes.
type Handler struct {
	chatSvc   *chatservice.Service
	captioner Captioner
}

// New creates the chat handler. captioner may be nil when the AI service is
// not configured.
func New(chatSvc *chatservice.Service, captioner Captioner) *Handler {
	return &Handler{chatSvc: chatSvc, captioner: captioner}
}

// RegisterRoutes mounts the chat endpoints; the caller wraps them in the
// session gate.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chatwithai", h.handleChatWithAI)
	r.Get("/conversations", h.handleListConversations)
	r.Get("/conversations/{conversationID}", h.handleGetConversation)
	r.Post("/like", h.handleLike)
	r.Post("/caption", h.handleCaption)
}

func (h *Handler) handleChatWithAI(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var payload struct {
		Message        string `json:"message"`
		ConversationID string `json:"conversationId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	env, convID, err := h.chatSvc.Ask(r.Context(), userID, payload.ConversationID, payload.Message)
	if err != nil {
		switch {
		case errors.Is(err, chatservice.ErrEmptyMessage):
			utils.RespondError(w, http.StatusBadRequest, "message is required")
		case errors.Is(err, chatservice.ErrUpstream):
			utils.RespondError(w, http.StatusBadGateway, fallbackMessage)
		default:
			utils.RespondError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"explanation":    env.Explanation,
		"code":           env.Code,
		"resources":      env.Resources,
		"conversationId": convID,
	})
}

func (h *Handler) handleListConversations(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	convs, err := h.chatSvc.Conversations(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"conversations": convs})
}

func (h *Handler) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	conversationID := chi.URLParam(r, "conversationID")

	conv, err := h.chatSvc.History(r.Context(), userID, conversationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "conversation not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, conv)
}

func (h *Handler) handleLike(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var payload struct {
		ConversationID string `json:"conversationId"`
		Text           string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.ConversationID == "" || payload.Text == "" {
		utils.RespondError(w, http.StatusBadRequest, "conversationId and text are required")
		return
	}

	if err := h.chatSvc.Like(r.Context(), userID, payload.ConversationID, payload.Text); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "conversation not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "liked"})
}

func (h *Handler) handleCaption(w http.ResponseWriter, r *http.Request) {
	if h.captioner == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "image captioning unavailable")
		return
	}

	var payload struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Image == "" {
		utils.RespondError(w, http.StatusBadRequest, "image is required")
		return
	}

	caption, err := h.captioner.Caption(r.Context(), payload.Image)
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, fallbackMessage)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"caption": caption})
}
