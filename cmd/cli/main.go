package main

import (
	"fmt"
	"os"

	"github.com/crucial707/expense-api/cmd/cli/auth"
	"github.com/crucial707/expense-api/cmd/cli/expenses"
	"github.com/crucial707/expense-api/cmd/cli/root"
)

func main() {
	auth.InitAuth(root.GetRoot())
	expenses.InitExpenses(root.GetRoot())

	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
