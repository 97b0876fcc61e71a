package expenses

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crucial707/expense-api/cmd/cli/config"
	"github.com/crucial707/expense-api/cmd/cli/output"
	"github.com/spf13/cobra"
)

// ==========================
// Init Expenses
// ==========================
func InitExpenses(rootCmd *cobra.Command) {

	expensesCmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage expenses",
	}

	expensesCmd.AddCommand(
		listExpensesCmd(),
		addExpenseCmd(),
		updateExpenseCmd(),
		deleteExpenseCmd(),
	)

	rootCmd.AddCommand(expensesCmd)
}

// ==========================
// LIST
// ==========================
func listExpensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your expenses",
		RunE: func(cmd *cobra.Command, args []string) error {

			body, err := doRequest("GET", "/expenses", nil)
			if err != nil {
				return err
			}

			var expenses []struct {
				ID          int       `json:"id"`
				Amount      float64   `json:"amount"`
				Description string    `json:"description"`
				Category    string    `json:"category"`
				Date        time.Time `json:"date"`
			}
			if err := json.Unmarshal(body, &expenses); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(expenses))
			for _, e := range expenses {
				rows = append(rows, []interface{}{
					e.ID, fmt.Sprintf("%.2f", e.Amount), e.Category, e.Description, e.Date.Format("2006-01-02"),
				})
			}
			output.RenderTable([]string{"ID", "AMOUNT", "CATEGORY", "DESCRIPTION", "DATE"}, rows)
			return nil
		},
	}
}

// ==========================
// ADD
// ==========================
func addExpenseCmd() *cobra.Command {

	var amount float64
	var description, category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
		RunE: func(cmd *cobra.Command, args []string) error {

			payload := map[string]interface{}{
				"amount":      amount,
				"description": description,
				"category":    category,
			}

			body, err := doRequest("POST", "/expenses", payload)
			if err != nil {
				return err
			}

			var out struct {
				Msg string `json:"msg"`
				ID  int    `json:"id"`
			}
			if err := json.Unmarshal(body, &out); err != nil {
				return err
			}
			fmt.Printf("%s (id=%d)\n", out.Msg, out.ID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "expense amount")
	cmd.Flags().StringVar(&description, "description", "", "expense description")
	cmd.Flags().StringVar(&category, "category", "", "expense category")
	cmd.MarkFlagRequired("amount")

	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateExpenseCmd() *cobra.Command {

	var amount float64
	var description, category string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update an expense (only the flags you set are sent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			// Partial update: include only flags the user actually set.
			payload := map[string]interface{}{}
			if cmd.Flags().Changed("amount") {
				payload["amount"] = amount
			}
			if cmd.Flags().Changed("description") {
				payload["description"] = description
			}
			if cmd.Flags().Changed("category") {
				payload["category"] = category
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update: set at least one of --amount, --description, --category")
			}

			body, err := doRequest("PUT", "/expenses/"+args[0], payload)
			if err != nil {
				return err
			}

			var out struct {
				Msg string `json:"msg"`
			}
			if err := json.Unmarshal(body, &out); err != nil {
				return err
			}
			fmt.Println(out.Msg)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "expense amount")
	cmd.Flags().StringVar(&description, "description", "", "expense description")
	cmd.Flags().StringVar(&category, "category", "", "expense category")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			body, err := doRequest("DELETE", "/expenses/"+args[0], nil)
			if err != nil {
				return err
			}

			var out struct {
				Msg string `json:"msg"`
			}
			if err := json.Unmarshal(body, &out); err != nil {
				return err
			}
			fmt.Println(out.Msg)
			return nil
		},
	}
}

// doRequest sends an authenticated request and returns the response body,
// turning non-2xx statuses into errors.
func doRequest(method, path string, payload interface{}) ([]byte, error) {
	token, err := config.ReadToken()
	if err != nil {
		return nil, fmt.Errorf("please login first")
	}

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error: %s", string(body))
	}
	return body, nil
}
