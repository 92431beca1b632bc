package main

import (
	"context"
	"log"

	"user-console/cmd/console/app"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("application exited with error: %v", err)
	}
}

func run() error {
	a, err := app.New()
	if err != nil {
		return err
	}

	return a.Run(context.Background())
}
