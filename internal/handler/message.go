package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/connectrandom/internal/domain"
	"github.com/msomdec/connectrandom/internal/service"
)

// MessageHandler handles direct-message HTTP requests.
type MessageHandler struct {
	messaging *service.MessagingService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messaging *service.MessagingService) *MessageHandler {
	return &MessageHandler{messaging: messaging}
}

// HandleSend stores one directed message.
// POST /api/messages
// Request:  {"fromUser":"...","toUser":"...","content":"..."}
// Response: 201 {"message": {...}}
//
// The sender comes from the request body, not the session, and the
// recipient is not checked against the user table. Both are carried over
// from the original client contract; fixing either changes the API.
func (h *MessageHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromUser string `json:"fromUser"`
		ToUser   string `json:"toUser"`
		Content  string `json:"content"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	msg, err := h.messaging.Send(r.Context(), req.FromUser, req.ToUser, req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrMissingField) {
			writeError(w, http.StatusUnprocessableEntity, "fromUser, toUser, and content are required.")
			return
		}
		slog.Error("send message", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": toMessageDTO(msg),
	})
}

// HandleConversation returns the full conversation between the logged-in
// user and the named user, oldest first.
// GET /api/messages/{username}
// Response: {"messages": [...]}
func (h *MessageHandler) HandleConversation(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not logged in.")
		return
	}

	other := r.PathValue("username")
	messages, err := h.messaging.Conversation(r.Context(), user.Username, other)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, "Not logged in.")
			return
		}
		slog.Error("load conversation", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"messages": toMessageDTOs(messages),
	})
}
