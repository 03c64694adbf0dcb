package main

import (
	"github.com/joho/godotenv"

	"fixture-generator/cmd/fixture-generator/internal/command"
)

func main() {
	// .env only provides defaults for FIXTURE_* variables, a missing file is fine
	_ = godotenv.Load()

	command.Execute()
}
