package main

import (
	"github.com/joho/godotenv"

	"docrag/internal/cli"
)

func main() {
	// Missing .env is fine; API keys may come from the real environment.
	_ = godotenv.Load()
	cli.Execute()
}
