package main

import (
	"log/slog"
	"os"
)

// @title Bank Ledger API
// @version 1.0
// @description Accounts, savings policies, transfers and statements backed by an append-only ledger.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
