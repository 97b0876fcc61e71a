package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/crucial707/expense-api/internal/metrics"
	"github.com/crucial707/expense-api/internal/middleware"
	"github.com/crucial707/expense-api/internal/models"
	"github.com/crucial707/expense-api/internal/repo"
	"github.com/go-chi/chi/v5"
)

type ExpenseHandler struct {
	Repo *repo.ExpenseRepo
}

//
// ==========================
// List Expenses
// ==========================
//

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONMsg(w, "Missing or invalid Authorization header", http.StatusUnauthorized)
		return
	}

	expenses, err := h.Repo.ListByUser(r.Context(), userID)
	if err != nil {
		JSONInternalError(w, err)
		return
	}

	// A user with no expenses gets an empty array, not null.
	if expenses == nil {
		expenses = []models.Expense{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expenses)
}

//
// ==========================
// Add Expense
// ==========================
//

func (h *ExpenseHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONMsg(w, "Missing or invalid Authorization header", http.StatusUnauthorized)
		return
	}

	var input struct {
		Amount      *float64 `json:"amount"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONMsg(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// Zero counts as missing, same as absent.
	if input.Amount == nil || *input.Amount == 0 {
		JSONMsg(w, "Amount required", http.StatusBadRequest)
		return
	}

	expense, err := h.Repo.Create(r.Context(), userID, *input.Amount, input.Description, input.Category)
	if err != nil {
		JSONInternalError(w, err)
		return
	}

	metrics.IncExpenses("created")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"msg": "Expense added",
		"id":  expense.ID,
	})
}

//
// ==========================
// Update Expense
// ==========================
//

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONMsg(w, "Missing or invalid Authorization header", http.StatusUnauthorized)
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		JSONMsg(w, "Invalid expense id", http.StatusBadRequest)
		return
	}

	var input struct {
		Amount      *float64 `json:"amount"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONMsg(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	patch := repo.ExpensePatch{
		Amount:      input.Amount,
		Description: input.Description,
		Category:    input.Category,
	}

	_, err = h.Repo.Update(r.Context(), userID, id, patch)
	if err != nil {
		// Someone else's expense looks exactly like a missing one.
		if errors.Is(err, repo.ErrNotFound) {
			JSONMsg(w, "Expense not found", http.StatusNotFound)
			return
		}
		JSONInternalError(w, err)
		return
	}

	metrics.IncExpenses("updated")
	JSONMsg(w, "Expense updated", http.StatusOK)
}

//
// ==========================
// Delete Expense
// ==========================
//

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONMsg(w, "Missing or invalid Authorization header", http.StatusUnauthorized)
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		JSONMsg(w, "Invalid expense id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONMsg(w, "Expense not found", http.StatusNotFound)
			return
		}
		JSONInternalError(w, err)
		return
	}

	metrics.IncExpenses("deleted")
	JSONMsg(w, "Expense deleted", http.StatusOK)
}
