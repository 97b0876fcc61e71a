package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/expense-api/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type ExpenseRepo struct {
	DB *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepo {
	return &ExpenseRepo{DB: db}
}

// ExpensePatch carries partial-update fields. Nil pointers leave the column untouched.
type ExpensePatch struct {
	Amount      *float64
	Description *string
	Category    *string
}

// ========================
// CREATE EXPENSE
// ========================

func (r *ExpenseRepo) Create(ctx context.Context, userID int, amount float64, description, category string) (models.Expense, error) {
	var expense models.Expense
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO expenses (amount, description, category, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, amount, description, category, date, user_id`,
		amount, description, category, userID,
	).Scan(
		&expense.ID,
		&expense.Amount,
		&expense.Description,
		&expense.Category,
		&expense.Date,
		&expense.UserID,
	)
	return expense, err
}

// ========================
// LIST EXPENSES BY USER
// ========================

func (r *ExpenseRepo) ListByUser(ctx context.Context, userID int) ([]models.Expense, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, amount, description, category, date, user_id
		 FROM expenses
		 WHERE user_id = $1
		 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Description, &e.Category, &e.Date, &e.UserID); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// ========================
// UPDATE EXPENSE (PARTIAL)
// ========================

// Update applies only the non-nil fields of patch. The WHERE clause scopes the
// write to the owner, so an expense owned by another user behaves as absent.
func (r *ExpenseRepo) Update(ctx context.Context, userID, expenseID int, patch ExpensePatch) (models.Expense, error) {
	var expense models.Expense
	err := r.DB.QueryRowContext(ctx,
		`UPDATE expenses
		 SET amount = COALESCE($1, amount),
		     description = COALESCE($2, description),
		     category = COALESCE($3, category)
		 WHERE id = $4 AND user_id = $5
		 RETURNING id, amount, description, category, date, user_id`,
		patch.Amount, patch.Description, patch.Category, expenseID, userID,
	).Scan(
		&expense.ID,
		&expense.Amount,
		&expense.Description,
		&expense.Category,
		&expense.Date,
		&expense.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Expense{}, ErrNotFound
		}
		return models.Expense{}, err
	}
	return expense, nil
}

// ========================
// DELETE EXPENSE
// ========================

func (r *ExpenseRepo) Delete(ctx context.Context, userID, expenseID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`,
		expenseID, userID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
