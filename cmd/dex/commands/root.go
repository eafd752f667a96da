// Package commands implements the dex terminal client.
package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/briangreenhill/pokedex/internal/app"
	"github.com/briangreenhill/pokedex/internal/catalog"
	"github.com/briangreenhill/pokedex/internal/config"
	"github.com/briangreenhill/pokedex/pokeapi"
)

// CLI represents the command line interface for dex.
type CLI struct {
	rootCmd *cobra.Command
	out     io.Writer
	errOut  io.Writer

	baseURL string
	timeout time.Duration
	format  string
	verbose bool

	catalog *catalog.Service
}

// New creates the CLI writing results to out and diagnostics to errOut.
func New(out, errOut io.Writer) *CLI {
	c := &CLI{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:           "dex",
		Short:         "Browse the PokeAPI catalog from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := rendererFor(c.format); err != nil {
				return err
			}
			c.setup()
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVar(&c.baseURL, "base-url", pokeapi.DefaultBaseURL, "PokeAPI base URL")
	rootCmd.PersistentFlags().DurationVar(&c.timeout, "timeout", pokeapi.DefaultTimeout, "Per-request upstream timeout")
	rootCmd.PersistentFlags().StringVarP(&c.format, "output", "o", "text", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log degraded sub-fetches to stderr")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newListCmd())

	return c
}

func (c *CLI) setup() {
	level := zerolog.ErrorLevel
	if c.verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: c.errOut}).Level(level).With().Timestamp().Logger()

	c.catalog = catalog.NewService(catalog.Options{
		Upstream: app.NewUpstream(config.UpstreamConfig{
			BaseURL:   c.baseURL,
			Timeout:   c.timeout,
			UserAgent: pokeapi.DefaultUserAgent,
		}),
		Logger: log,
	})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) render(v any) error {
	r, err := rendererFor(c.format)
	if err != nil {
		return err
	}
	if err := r(c.out, v); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
