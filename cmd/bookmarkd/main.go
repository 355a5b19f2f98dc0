package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/app"
)

func main() {
	// Best-effort: a missing .env is fine, real env vars win anyway.
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ bookmarkd failed to start: %v", err)
	}
}
