package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crucial707/expense-api/internal/middleware"
	"github.com/crucial707/expense-api/internal/repo"
)

type MeHandler struct {
	UserRepo *repo.UserRepo
}

// GetMe returns the authenticated user's profile.
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONMsg(w, "Missing or invalid Authorization header", http.StatusUnauthorized)
		return
	}

	user, err := h.UserRepo.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONMsg(w, "User not found", http.StatusNotFound)
			return
		}
		JSONInternalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"username": user.Username,
		"email":    user.Email,
	})
}
