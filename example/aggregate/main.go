// Package main demonstrates reporting an aggregate of independent errors.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	honeybadger "github.com/fussybeaver/honeybadger-go"
	"github.com/fussybeaver/honeybadger-go/domain/config"
)

func main() {
	cfg := config.NewBuilder(os.Getenv("HONEYBADGER_API_KEY")).
		WithEnv("development").
		Build()

	client, err := honeybadger.New(cfg)
	if err != nil {
		log.Fatalf("constructing client: %v", err)
	}

	// Each joined error becomes one cause record in the notice.
	failures := errors.Join(
		errors.New("primary region unreachable"),
		errors.New("fallback region unreachable"),
	)

	if outcome := client.Notify(context.Background(), failures, nil); outcome != nil {
		log.Fatalf("delivery failed: %v", outcome)
	}
	log.Println("notice accepted")
}
