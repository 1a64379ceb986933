// Package main demonstrates reporting an error with a chain of causes.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	honeybadger "github.com/fussybeaver/honeybadger-go"
	"github.com/fussybeaver/honeybadger-go/domain/config"
	"github.com/fussybeaver/honeybadger-go/domain/notice"
)

func main() {
	cfg := config.NewBuilder(os.Getenv("HONEYBADGER_API_KEY")).
		WithEnv("development").
		Build()

	client, err := honeybadger.New(cfg)
	if err != nil {
		log.Fatalf("constructing client: %v", err)
	}

	if err := loadProfile(); err != nil {
		// WithStack attaches a backtrace to the notice.
		outcome := client.Notify(context.Background(), notice.WithStack(err), map[string]string{
			"user_id": "42",
		})
		if outcome != nil {
			log.Fatalf("delivery failed: %v", outcome)
		}
		log.Println("notice accepted")
	}
}

func loadProfile() error {
	if err := readSettings(); err != nil {
		return fmt.Errorf("loading user profile: %w", err)
	}
	return nil
}

func readSettings() error {
	_, err := os.Open("/nonexistent/settings.json")
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	return nil
}
