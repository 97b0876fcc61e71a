package config

import (
	"os"
	"path/filepath"
)

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the base URL for the Expense Tracker API.
// It can be overridden with the EXPENSE_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("EXPENSE_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".expense-api", "token"), nil
}

// SaveToken stores the JWT token locally (0600) for subsequent CLI commands.
func SaveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

// ReadToken returns the locally stored JWT token.
func ReadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ClearToken removes the locally stored JWT token.
func ClearToken() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
