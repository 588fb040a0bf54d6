package main

import (
	"github.com/joho/godotenv"

	"github.com/mcoot/sessionflow/internal/cli"
)

func main() {
	// SESSIONFLOW_* settings may live in a local .env
	_ = godotenv.Load()

	cli.Execute()
}
