package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crucial707/expense-api/internal/token"
	"github.com/golang-jwt/jwt/v5"
)

func authTestHandler(t *testing.T, wantUserID int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		if !ok {
			t.Error("handler ran without user id in context")
		}
		if id != wantUserID {
			t.Errorf("context user id: got %d, want %d", id, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func decodeMsg(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out["msg"]
}

func TestRequireAuth_ValidToken(t *testing.T) {
	svc := token.New([]byte("test-secret"), time.Hour)
	tok, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()

	RequireAuth(svc)(authTestHandler(t, 7)).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestRequireAuth_NoHeader(t *testing.T) {
	svc := token.New([]byte("test-secret"), time.Hour)

	req := httptest.NewRequest("GET", "/expenses", nil)
	rr := httptest.NewRecorder()

	called := false
	RequireAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if called {
		t.Error("handler was invoked despite missing header")
	}
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	if msg := decodeMsg(t, rr); msg != "Missing or invalid Authorization header" {
		t.Errorf("unexpected msg: %q", msg)
	}
}

func TestRequireAuth_NotBearer(t *testing.T) {
	svc := token.New([]byte("test-secret"), time.Hour)

	req := httptest.NewRequest("GET", "/expenses", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()

	RequireAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	if msg := decodeMsg(t, rr); msg != "Missing or invalid Authorization header" {
		t.Errorf("unexpected msg: %q", msg)
	}
}

func TestRequireAuth_MalformedToken(t *testing.T) {
	svc := token.New([]byte("test-secret"), time.Hour)

	req := httptest.NewRequest("GET", "/expenses", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()

	RequireAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want 422", rr.Code)
	}
	if msg := decodeMsg(t, rr); msg != "Invalid token" {
		t.Errorf("unexpected msg: %q", msg)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	svc := token.New([]byte("test-secret"), -time.Minute)
	tok, err := svc.Issue(1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()

	RequireAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	if msg := decodeMsg(t, rr); msg != "Token has expired" {
		t.Errorf("unexpected msg: %q", msg)
	}
}

func TestRequireAuth_VerificationFailure(t *testing.T) {
	secret := []byte("test-secret")
	svc := token.New(secret, time.Hour)

	// Valid signature, unusable subject
	claims := jwt.MapClaims{
		"sub": "abc",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest("GET", "/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()

	RequireAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want 422", rr.Code)
	}
	if msg := decodeMsg(t, rr); msg != "Token verification failed" {
		t.Errorf("unexpected msg: %q", msg)
	}
}
