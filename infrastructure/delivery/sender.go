// Package delivery implements HTTPS delivery of serialized notices to the
// Honeybadger API.
package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/google/uuid"

	"github.com/fussybeaver/honeybadger-go/domain/config"
	domaindelivery "github.com/fussybeaver/honeybadger-go/domain/delivery"
	"github.com/fussybeaver/honeybadger-go/infrastructure/logging"
	"github.com/fussybeaver/honeybadger-go/infrastructure/telemetry"
)

// Sender posts serialized notices to the configured endpoint and maps the
// response into the delivery outcome taxonomy. A Sender is immutable
// after construction and safe for concurrent use.
type Sender struct {
	config    *config.Config
	client    *http.Client
	userAgent string
	breaker   circuitbreaker.CircuitBreaker[int]
	metrics   *telemetry.MetricsProvider
}

// Option configures a Sender.
type Option func(*Sender)

// WithHTTPClient replaces the underlying HTTP client, for tests and
// custom TLS setups.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Sender) {
		s.client = client
	}
}

// WithCircuitBreaker short-circuits deliveries after threshold
// consecutive failures, staying open for the cooldown duration. The
// breaker never adds attempts; when open, delivery fails fast without
// touching the network. Disabled by default.
func WithCircuitBreaker(threshold uint32, cooldown time.Duration) Option {
	return func(s *Sender) {
		s.breaker = circuitbreaker.New[int](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    cooldown,
			Timeout:     cooldown,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
		})
	}
}

// WithMetrics records delivery metrics through the given provider.
func WithMetrics(metrics *telemetry.MetricsProvider) Option {
	return func(s *Sender) {
		s.metrics = metrics
	}
}

// NewSender validates the configured endpoint and constructs a Sender.
func NewSender(cfg *config.Config, userAgent string, opts ...Option) (*Sender, error) {
	parsed, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid notices endpoint: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid notices endpoint: %q is not an absolute URL", cfg.Endpoint)
	}

	s := &Sender{
		config:    cfg,
		userAgent: userAgent,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		s.client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConnsPerHost: cfg.PoolSize,
			},
		}
	}

	return s, nil
}

// NewRequest builds the POST request carrying one serialized notice.
func (s *Sender) NewRequest(ctx context.Context, payload []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", s.config.APIKey)
	req.Header.Set("User-Agent", s.userAgent)

	return req, nil
}

// Deliver posts the payload once, bounded by the configured timeout. A
// nil return means the notice was accepted; every other outcome is a
// typed error from the domain delivery package. A received response is
// always classified, never discarded; the response body is drained
// without being parsed.
func (s *Sender) Deliver(ctx context.Context, payload []byte) error {
	if s.breaker != nil {
		_, err := s.breaker.Execute(ctx, func(ctx context.Context) (int, error) {
			return 0, s.deliver(ctx, payload)
		})
		return err
	}
	return s.deliver(ctx, payload)
}

func (s *Sender) deliver(ctx context.Context, payload []byte) error {
	id := uuid.NewString()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	req, err := s.NewRequest(ctx, payload)
	if err != nil {
		return &domaindelivery.TransportError{Cause: err}
	}

	logging.Debug().
		Add(logging.DeliveryID(id)).
		Add(logging.Endpoint(s.config.Endpoint)).
		Add(logging.PayloadBytes(len(payload))).
		Add(logging.Timeout(s.config.Timeout)).
		Msg("posting notice")

	resp, err := s.client.Do(req)
	if err != nil {
		outcome := s.transportOutcome(err)
		s.observe(ctx, id, len(payload), start, outcome)
		return outcome
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck // body is never parsed

	outcome := domaindelivery.Classify(resp.StatusCode)
	logging.Debug().
		Add(logging.DeliveryID(id)).
		Add(logging.Status(resp.StatusCode)).
		Add(logging.Duration(time.Since(start))).
		Msg("notices endpoint replied")
	s.observe(ctx, id, len(payload), start, outcome)
	return outcome
}

// transportOutcome distinguishes the expired delivery timer from genuine
// transport failures.
func (s *Sender) transportOutcome(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domaindelivery.TimeoutError{
			Seconds: uint64(s.config.Timeout / time.Second),
		}
	}
	return &domaindelivery.TransportError{Cause: err}
}

func (s *Sender) observe(ctx context.Context, id string, payloadSize int, start time.Time, outcome error) {
	if outcome != nil {
		logging.Debug().
			Add(logging.DeliveryID(id)).
			Add(logging.ErrorField(outcome)).
			Msg("notice delivery failed")
	}
	if s.metrics != nil {
		s.metrics.RecordDelivery(context.WithoutCancel(ctx), outcomeLabel(outcome), payloadSize, time.Since(start))
	}
}

// outcomeLabel names an outcome for metric attributes.
func outcomeLabel(outcome error) string {
	var unknown *domaindelivery.UnknownStatusError
	var timeout *domaindelivery.TimeoutError
	var transport *domaindelivery.TransportError

	switch {
	case outcome == nil:
		return "success"
	case errors.Is(outcome, domaindelivery.ErrRedirected):
		return "redirected"
	case errors.Is(outcome, domaindelivery.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(outcome, domaindelivery.ErrUnprocessable):
		return "unprocessable"
	case errors.Is(outcome, domaindelivery.ErrRateLimited):
		return "rate_limited"
	case errors.Is(outcome, domaindelivery.ErrServer):
		return "server_error"
	case errors.As(outcome, &timeout):
		return "timed_out"
	case errors.As(outcome, &unknown):
		return "unknown_status"
	case errors.As(outcome, &transport):
		return "transport_failed"
	default:
		return "error"
	}
}
