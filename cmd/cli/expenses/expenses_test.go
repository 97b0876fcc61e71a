package expenses

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/crucial707/expense-api/cmd/cli/config"
)

// captureOutput helps capture stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

// setupCLI points the CLI at srv and stores a token under a throwaway home dir.
func setupCLI(t *testing.T, srv *httptest.Server) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("EXPENSE_API_URL", srv.URL)
	if err := config.SaveToken("test-token"); err != nil {
		t.Fatalf("save token: %v", err)
	}
}

func TestUpdateExpense_SendsOnlyChangedFlags(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "Expense updated"})
	}))
	defer srv.Close()

	setupCLI(t, srv)

	cmd := updateExpenseCmd()
	_ = cmd.Flags().Set("amount", "20")

	out := captureOutput(t, func() {
		if err := cmd.RunE(cmd, []string{"5"}); err != nil {
			t.Errorf("update: %v", err)
		}
	})

	if gotMethod != "PUT" || gotPath != "/expenses/5" {
		t.Errorf("unexpected request: %s %s", gotMethod, gotPath)
	}
	// Only the flag the user set goes over the wire; unset fields stay out of
	// the payload so the server leaves them untouched.
	if len(gotBody) != 1 {
		t.Errorf("expected exactly one field in body, got: %v", gotBody)
	}
	if gotBody["amount"] != 20.0 {
		t.Errorf("unexpected amount: %v", gotBody["amount"])
	}
	if !strings.Contains(out, "Expense updated") {
		t.Errorf("expected confirmation in output, got: %s", out)
	}
}

func TestUpdateExpense_CategoryOnly(t *testing.T) {
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "Expense updated"})
	}))
	defer srv.Close()

	setupCLI(t, srv)

	cmd := updateExpenseCmd()
	_ = cmd.Flags().Set("category", "transport")

	captureOutput(t, func() {
		if err := cmd.RunE(cmd, []string{"7"}); err != nil {
			t.Errorf("update: %v", err)
		}
	})

	if len(gotBody) != 1 || gotBody["category"] != "transport" {
		t.Errorf("expected only category in body, got: %v", gotBody)
	}
	if _, ok := gotBody["amount"]; ok {
		t.Error("amount sent despite flag not being set")
	}
}

func TestUpdateExpense_NoFlags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent with no fields to update")
	}))
	defer srv.Close()

	setupCLI(t, srv)

	cmd := updateExpenseCmd()
	if err := cmd.RunE(cmd, []string{"5"}); err == nil {
		t.Error("expected error when no flags are set")
	}
}

func TestListExpenses_TableOutput(t *testing.T) {
	expenses := []map[string]interface{}{
		{"id": 1, "amount": 42.5, "description": "lunch", "category": "food", "date": "2026-09-01T12:00:00Z"},
		{"id": 2, "amount": 12.0, "description": "bus", "category": "transport", "date": "2026-09-01T13:00:00Z"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/expenses" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected Authorization header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(expenses)
	}))
	defer srv.Close()

	setupCLI(t, srv)

	cmd := listExpensesCmd()

	out := captureOutput(t, func() {
		if err := cmd.RunE(cmd, []string{}); err != nil {
			t.Errorf("list: %v", err)
		}
	})

	if !strings.Contains(out, "food") || !strings.Contains(out, "transport") {
		t.Fatalf("expected categories in table output, got: %s", out)
	}
	if !strings.Contains(out, "42.50") {
		t.Fatalf("expected formatted amount in table output, got: %s", out)
	}
}
