package main

import (
	"context"
	"log"

	"brandlink/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring.
// 3) Start schedulers (expiry sweeper, outbox relay).
func main() {
	log.Println("brandlink worker starting")
	app, err := bootstrap.BuildWorker(context.Background())
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("brandlink worker stopped with error: %v", err)
	}
}
