package main

import (
	"log"

	"github.com/MrSnakeDoc/hfqr/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ hfqr failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ hfqr stopped with an error: %v", err)
	}
}
