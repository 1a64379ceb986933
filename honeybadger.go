// Package honeybadger is a client for reporting application errors to the
// Honeybadger API. A Client normalizes an error and its cause chain into a
// notice payload, posts it over HTTPS within a bounded timeout, and maps
// the response into a typed outcome.
package honeybadger

import (
	"context"
	"fmt"
	"runtime"

	"github.com/fussybeaver/honeybadger-go/domain/config"
	"github.com/fussybeaver/honeybadger-go/domain/notice"
	"github.com/fussybeaver/honeybadger-go/infrastructure/delivery"
	"github.com/fussybeaver/honeybadger-go/infrastructure/logging"
)

// Notifier identity reported with every notice.
const (
	notifierName = "honeybadger-go"
	notifierURL  = "https://github.com/fussybeaver/honeybadger-go"
)

// Client reports errors to the Honeybadger API. A Client is immutable
// after construction and safe for concurrent use; each Notify call is an
// independent delivery.
type Client struct {
	config *config.Config
	sender *delivery.Sender
}

// New constructs a Client from the given configuration. Construction
// fails only when the delivery transport cannot be initialized, which is
// not retryable without reconfiguration.
func New(cfg *config.Config, opts ...delivery.Option) (*Client, error) {
	sender, err := delivery.NewSender(cfg, userAgent(), opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing delivery transport: %w", err)
	}

	logging.Debug().
		Add(logging.Endpoint(cfg.Endpoint)).
		Add(logging.Environment(cfg.Env)).
		Add(logging.Timeout(cfg.Timeout)).
		Msg("constructed honeybadger client")

	return &Client{
		config: cfg,
		sender: sender,
	}, nil
}

// Notify reports err to Honeybadger, together with optional context
// annotations such as a request id. It returns nil only when the API
// accepted the notice; every other outcome is a typed error from the
// domain delivery package, matchable with errors.Is and errors.As.
// Exactly one network attempt is made per call; retrying is the caller's
// decision.
func (c *Client) Notify(ctx context.Context, err error, contextData map[string]string) error {
	record := notice.Normalize(err)
	n := notice.New(c.config, c.notifier(), record, contextData)

	payload, serr := n.Payload()
	if serr != nil {
		return serr
	}

	logging.Debug().
		Add(logging.ErrorClass(record.Class)).
		Add(logging.PayloadBytes(len(payload))).
		Msg("reporting error")

	return c.sender.Deliver(ctx, payload)
}

func (c *Client) notifier() notice.Notifier {
	return notice.Notifier{
		Name:    notifierName,
		URL:     notifierURL,
		Version: Version,
	}
}

// userAgent reports the client identity and platform, for example
// "HB-go 0.1.0; linux/go1.25.0". The Go runtime version stands in for
// the platform version: the runtime exposes no portable OS version, and
// the toolchain that produced the binary is the more useful datum when
// reading notices off the wire.
func userAgent() string {
	return fmt.Sprintf("HB-go %s; %s/%s", Version, runtime.GOOS, runtime.Version())
}
