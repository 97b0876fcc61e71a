package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/expense-api/internal/middleware"
	"github.com/crucial707/expense-api/internal/repo"
)

func TestMeHandler_GetMe(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(1, "alice", "alice@example.com", "hashed", now))

	h := &MeHandler{UserRepo: repo.NewUserRepo(db)}

	req := httptest.NewRequest("GET", "/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	rr := httptest.NewRecorder()
	h.GetMe(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("GetMe status: got %d, want 200", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["username"] != "alice" || out["email"] != "alice@example.com" {
		t.Errorf("unexpected response: %v", out)
	}
	// The hash must never appear in the profile payload
	if _, ok := out["password_hash"]; ok {
		t.Error("password_hash leaked in response")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestMeHandler_GetMe_NoContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := &MeHandler{UserRepo: repo.NewUserRepo(db)}

	req := httptest.NewRequest("GET", "/me", nil)
	rr := httptest.NewRecorder()
	h.GetMe(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("GetMe status: got %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
