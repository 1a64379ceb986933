package honeybadger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/fussybeaver/honeybadger-go/domain/config"
	"github.com/fussybeaver/honeybadger-go/domain/delivery"
	"github.com/fussybeaver/honeybadger-go/domain/notice"
)

func clientFor(t *testing.T, endpoint string) *Client {
	t.Helper()

	cfg := config.NewBuilder("dummy-api-key").
		WithRoot("/srv/app").
		WithEnv("test").
		WithHostname("web-1").
		WithEndpoint(endpoint).
		WithTimeout(5 * time.Second).
		Build()

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNew_RejectsUnusableEndpoint(t *testing.T) {
	cfg := config.NewBuilder("dummy-api-key").
		WithEndpoint("://broken").
		Build()

	if _, err := New(cfg); err == nil {
		t.Fatal("New() with unusable endpoint = nil error, want failure")
	}
}

func TestNotify_DeliversNormalizedNotice(t *testing.T) {
	var (
		mu   sync.Mutex
		body []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		body = b
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := clientFor(t, server.URL)

	cause := errors.New("connection refused")
	err := fmt.Errorf("fetching upstream: %w", cause)

	if nerr := client.Notify(context.Background(), err, map[string]string{"request_id": "req-42"}); nerr != nil {
		t.Fatalf("Notify() error = %v", nerr)
	}

	mu.Lock()
	defer mu.Unlock()

	var payload struct {
		APIKey string `json:"api_key"`
		Error  struct {
			Class  string         `json:"class"`
			Causes []notice.Error `json:"causes"`
		} `json:"error"`
		Request struct {
			Context map[string]string `json:"context"`
		} `json:"request"`
		Server struct {
			EnvironmentName string `json:"environment_name"`
			Hostname        string `json:"hostname"`
		} `json:"server"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshaling delivered payload: %v", err)
	}

	if payload.APIKey != "dummy-api-key" {
		t.Errorf("api_key = %q", payload.APIKey)
	}
	if payload.Error.Class == "" {
		t.Error("error.class is empty")
	}
	if len(payload.Error.Causes) != 2 {
		t.Errorf("len(causes) = %d, want 2", len(payload.Error.Causes))
	}
	if payload.Request.Context["request_id"] != "req-42" {
		t.Errorf("context.request_id = %q", payload.Request.Context["request_id"])
	}
	if payload.Server.EnvironmentName != "test" {
		t.Errorf("environment_name = %q", payload.Server.EnvironmentName)
	}
	if payload.Server.Hostname != "web-1" {
		t.Errorf("hostname = %q", payload.Server.Hostname)
	}
}

func TestNotify_MapsTerminalOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, want: delivery.ErrRateLimited},
		{name: "unauthorized", status: http.StatusUnauthorized, want: delivery.ErrUnauthorized},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, want: delivery.ErrUnprocessable},
		{name: "server error", status: http.StatusInternalServerError, want: delivery.ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := clientFor(t, server.URL)

			got := client.Notify(context.Background(), errors.New("boom"), nil)
			if !errors.Is(got, tt.want) {
				t.Errorf("Notify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNotify_UnlistedStatusCarriesTheCode(t *testing.T) {
	// Only 500 itself is a server-error outcome; other 5xx codes
	// surface as unknown statuses with the code attached.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := clientFor(t, server.URL)

	got := client.Notify(context.Background(), errors.New("boom"), nil)

	var unknown *delivery.UnknownStatusError
	if !errors.As(got, &unknown) {
		t.Fatalf("Notify() = %v, want *UnknownStatusError", got)
	}
	if unknown.Code != http.StatusBadGateway {
		t.Errorf("Code = %d, want %d", unknown.Code, http.StatusBadGateway)
	}
}

func TestNotify_EachCallIsIndependent(t *testing.T) {
	var (
		mu       sync.Mutex
		statuses = []int{http.StatusTooManyRequests, http.StatusCreated}
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		status := statuses[0]
		if len(statuses) > 1 {
			statuses = statuses[1:]
		}
		mu.Unlock()
		w.WriteHeader(status)
	}))
	defer server.Close()

	client := clientFor(t, server.URL)
	ctx := context.Background()

	if err := client.Notify(ctx, errors.New("boom"), nil); !errors.Is(err, delivery.ErrRateLimited) {
		t.Fatalf("first Notify() = %v, want %v", err, delivery.ErrRateLimited)
	}

	// A failed delivery never poisons the client; the next call succeeds.
	if err := client.Notify(ctx, errors.New("boom"), nil); err != nil {
		t.Fatalf("second Notify() = %v, want nil", err)
	}
}

func TestNotify_ConcurrentCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := clientFor(t, server.URL)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- client.Notify(context.Background(), fmt.Errorf("worker %d failed", i), nil)
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Notify() = %v, want nil", err)
		}
	}
}

func TestNotify_SendsClientUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := clientFor(t, server.URL)
	if err := client.Notify(context.Background(), errors.New("boom"), nil); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	want := fmt.Sprintf("HB-go %s; %s/%s", Version, runtime.GOOS, runtime.Version())
	if got != want {
		t.Errorf("User-Agent = %q, want %q", got, want)
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() != Version {
		t.Errorf("GetVersion() = %q, want %q", GetVersion(), Version)
	}
	if Version == "" {
		t.Error("Version is empty")
	}
}
