package main

import (
	"os"

	"chatbench/internal/app"
)

// @title           chatbench API
// @version         1.0
// @description     Chat with local GGUF models and export transcripts to Google Sheets.
// @host            localhost:8000
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
