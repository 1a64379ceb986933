package notice

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fussybeaver/honeybadger-go/domain/config"
)

// Notifier identifies the reporting client library to the Honeybadger
// service. It is constant for the lifetime of the process.
type Notifier struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Version string `json:"version"`
}

// Request carries the caller-supplied context annotations and a snapshot
// of the process environment taken when the notice was built.
type Request struct {
	Context map[string]string `json:"context"`
	CGIData map[string]string `json:"cgi_data"`
}

// Server carries host and process details stamped into each notice.
type Server struct {
	ProjectRoot     string `json:"project_root"`
	EnvironmentName string `json:"environment_name"`
	Hostname        string `json:"hostname"`
	Time            uint64 `json:"time"`
	PID             int    `json:"pid"`
}

// Notice is the full wire document sent to the notices endpoint for one
// reported error. It is built fresh per report and exists only long
// enough to be serialized.
type Notice struct {
	APIKey   string   `json:"api_key"`
	Notifier Notifier `json:"notifier"`
	Error    Error    `json:"error"`
	Request  Request  `json:"request"`
	Server   Server   `json:"server"`
}

// New assembles a notice for one error record. The current wall-clock
// time (unix seconds, clamped to zero for pre-epoch clocks), the process
// id, and a snapshot of the process environment are stamped at call time.
func New(cfg *config.Config, notifier Notifier, record Error, context map[string]string) *Notice {
	return &Notice{
		APIKey:   cfg.APIKey,
		Notifier: notifier,
		Error:    record,
		Request: Request{
			Context: context,
			CGIData: environSnapshot(),
		},
		Server: Server{
			ProjectRoot:     cfg.Root,
			EnvironmentName: cfg.Env,
			Hostname:        cfg.Hostname,
			Time:            unixNow(),
			PID:             os.Getpid(),
		},
	}
}

// Payload serializes the notice to its JSON wire form. It fails only when
// the underlying data cannot be encoded.
func (n *Notice) Payload() ([]byte, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("serializing notice: %w", err)
	}
	return data, nil
}

func unixNow() uint64 {
	secs := time.Now().Unix()
	if secs < 0 {
		return 0
	}
	return uint64(secs)
}

func environSnapshot() map[string]string {
	environ := os.Environ()
	snapshot := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, _ := strings.Cut(kv, "=")
		snapshot[key] = value
	}
	return snapshot
}
