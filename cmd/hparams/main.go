// FILE: lixenwraith/hparams/cmd/hparams/main.go

// Command hparams inspects parameter declaration files: it prints the search
// space, the defaults and the flag usage, draws sample trials, parses
// command-line arguments and converts between file formats.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lixenwraith/hparams"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	file     string
	logLevel string
	logger   zerolog.Logger
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "hparams",
		Short:         "Inspect hyperparameter declaration files",
		Long:          "Reads a YAML, JSON or TOML parameter declaration file and exports it as a search space, defaults, flags or samples.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
			}
			opts.logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}).
				Level(level).
				With().
				Timestamp().
				Str("component", "hparams").
				Logger()
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "declaration file (default: discovered hparams.{yaml,yml,json,toml})")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newSpaceCmd(opts),
		newDefaultsCmd(opts),
		newFlagsCmd(opts),
		newSampleCmd(opts),
		newParseCmd(opts),
		newConvertCmd(opts),
	)
	return root
}

// load reads the declaration file named by --file or found by discovery
func (o *rootOptions) load() (*hparams.Configs, error) {
	path := o.file
	if path == "" {
		found, ok := hparams.DiscoverFile(hparams.DefaultDiscoveryOptions("hparams"))
		if !ok {
			return nil, fmt.Errorf("no declaration file given and none discovered")
		}
		path = found
	}

	o.logger.Debug().Str("file", path).Msg("loading declarations")
	c, err := hparams.NewBuilder().
		WithLogger(o.logger).
		WithFile(path).
		Build()
	if err != nil {
		return nil, err
	}
	o.logger.Debug().Int("count", c.Len()).Strs("names", c.Names()).Msg("declarations loaded")
	return c, nil
}
