package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/connectrandom/internal/service"
)

// UserHandler handles user-discovery HTTP requests.
type UserHandler struct {
	directory *service.DirectoryService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(directory *service.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

// HandleNearby lists other users in the logged-in user's city.
// GET /api/users/nearby
// Response: {"users": [...]}
func (h *UserHandler) HandleNearby(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not logged in.")
		return
	}

	users, err := h.directory.NearbyUsers(r.Context(), user)
	if err != nil {
		slog.Error("list nearby users", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users": toUserDTOs(users),
	})
}
