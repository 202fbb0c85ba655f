package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/metinatakli/movie-catalog-admin/internal/app"
)

func main() {
	// A missing .env file is fine; flags and real environment variables
	// still apply.
	_ = godotenv.Load()

	err := app.Run()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
