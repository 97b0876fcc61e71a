package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/expense-api/internal/metrics"
	"github.com/crucial707/expense-api/internal/repo"
	"github.com/crucial707/expense-api/internal/token"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo *repo.UserRepo
	Tokens   *token.Service
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONMsg(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONMsg(w, "Missing fields", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		JSONInternalError(w, err)
		return
	}

	_, err = h.UserRepo.Create(r.Context(), input.Username, input.Email, string(hash))
	if err != nil {
		if errors.Is(err, repo.ErrConflict) {
			JSONMsg(w, "Username or email already exists", http.StatusBadRequest)
			return
		}
		slog.Error("register: create user failed", "error", err)
		JSONInternalError(w, err)
		return
	}

	metrics.IncUsersRegistered()
	JSONMsg(w, "User registered successfully", http.StatusCreated)
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONMsg(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// Unknown user and wrong password produce the same response so usernames
	// cannot be enumerated through the login endpoint.
	user, err := h.UserRepo.GetByUsername(r.Context(), input.Username)
	if err != nil {
		metrics.IncLogins("failed")
		JSONMsg(w, "Bad credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		metrics.IncLogins("failed")
		JSONMsg(w, "Bad credentials", http.StatusUnauthorized)
		return
	}

	signed, err := h.Tokens.Issue(user.ID)
	if err != nil {
		JSONInternalError(w, err)
		return
	}

	metrics.IncLogins("ok")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"access_token": signed})
}
