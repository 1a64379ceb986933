package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	honeybadger "github.com/fussybeaver/honeybadger-go"
	domainconfig "github.com/fussybeaver/honeybadger-go/domain/config"
	"github.com/fussybeaver/honeybadger-go/domain/notice"
	infraconfig "github.com/fussybeaver/honeybadger-go/infrastructure/config"
)

// notifyOptions holds options for the notify command.
type notifyOptions struct {
	configPath string
	apiKey     string
	message    string
	env        string
	timeout    uint64
}

// newNotifyCmd creates the notify command.
func (a *App) newNotifyCmd() *cobra.Command {
	opts := &notifyOptions{}

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send a test notice",
		Long: `Send a test notice to verify API key and connectivity.

The notice carries a synthetic error with a captured backtrace and a
correlation id, so it can be located in the Honeybadger UI.

Examples:
  # Using a configuration file
  honeybadger notify -c honeybadger.yml

  # Using flags only
  honeybadger notify --api-key ffffff --message "deploy smoke test"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.sendTestNotice(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "Honeybadger project API key")
	cmd.Flags().StringVarP(&opts.message, "message", "m", "Test notice from honeybadger-go", "Message of the test error")
	cmd.Flags().StringVar(&opts.env, "env", "", "Environment name reported with the notice")
	cmd.Flags().Uint64Var(&opts.timeout, "timeout", 0, "Delivery timeout in seconds")

	return cmd
}

// sendTestNotice builds a client from the command options and reports a
// synthetic error.
func (a *App) sendTestNotice(cmd *cobra.Command, opts *notifyOptions) error {
	builder, err := a.configBuilder(opts)
	if err != nil {
		return err
	}

	client, err := honeybadger.New(builder.Build())
	if err != nil {
		return err
	}

	id := uuid.NewString()
	testErr := notice.WithStack(fmt.Errorf("honeybadger-go test notice: %s", opts.message))

	err = client.Notify(cmd.Context(), testErr, map[string]string{
		"generated_by": "honeybadger-go cli",
		"notice_id":    id,
	})
	if err != nil {
		return fmt.Errorf("delivery failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "Notice accepted (notice_id %s)\n", id)
	return nil
}

// configBuilder resolves the configuration source: a config file when
// given, flags and environment otherwise.
func (a *App) configBuilder(opts *notifyOptions) (*domainconfig.Builder, error) {
	var builder *domainconfig.Builder

	if opts.configPath != "" {
		file, err := infraconfig.NewLoader().LoadFile(opts.configPath)
		if err != nil {
			return nil, err
		}
		if opts.apiKey != "" {
			file.APIKey = opts.apiKey
		}
		builder = file.Builder()
	} else {
		if opts.apiKey == "" {
			return nil, errors.New("an API key is required (--api-key flag or -c config file)")
		}
		builder = domainconfig.NewBuilder(opts.apiKey)
	}

	if opts.env != "" {
		builder.WithEnv(opts.env)
	}
	if opts.timeout != 0 {
		builder.WithTimeout(time.Duration(opts.timeout) * time.Second)
	}

	return builder, nil
}
