package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	domainconfig "github.com/fussybeaver/honeybadger-go/domain/config"
	infraconfig "github.com/fussybeaver/honeybadger-go/infrastructure/config"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	strict     bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Long: `Validate a honeybadger configuration file for correctness.

This command checks:
  - File format (YAML or JSON)
  - That an API key is configured
  - Environment variable references (in strict mode)

Examples:
  # Validate a configuration file
  honeybadger validate -c honeybadger.yml

  # Strict validation (fail on missing env vars)
  honeybadger validate -c honeybadger.yml --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validateConfig(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")

	return cmd
}

// validateConfig validates the configuration file.
func (a *App) validateConfig(opts *validateOptions) error {
	if opts.configPath == "" {
		return fmt.Errorf("configuration file path is required (-c flag)")
	}

	loader := infraconfig.NewLoaderWithOptions(
		infraconfig.WithStrictEnv(opts.strict),
	)
	file, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if file.APIKey == "" {
		return fmt.Errorf("validation failed: %w", domainconfig.ErrMissingAPIKey)
	}

	cfg := file.Builder().Build()
	fmt.Fprintf(a.stdout, "Configuration is valid\n")
	fmt.Fprintf(a.stdout, "  Endpoint: %s\n", cfg.Endpoint)
	fmt.Fprintf(a.stdout, "  Environment: %s\n", cfg.Env)
	fmt.Fprintf(a.stdout, "  Hostname: %s\n", cfg.Hostname)
	fmt.Fprintf(a.stdout, "  Timeout: %s\n", cfg.Timeout)

	return nil
}
