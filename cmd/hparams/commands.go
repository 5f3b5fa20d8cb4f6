// FILE: lixenwraith/hparams/cmd/hparams/commands.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/lixenwraith/hparams"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// writeEncoded prints v as indented JSON or as YAML
func writeEncoded(w io.Writer, v any, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("unsupported output format %q (json, yaml)", format)
}

func newSpaceCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "space",
		Short: "Print the search space of the searchable parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load()
			if err != nil {
				return err
			}
			return writeEncoded(cmd.OutOrStdout(), c.TuneConfig(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "json", "output format (json, yaml)")
	return cmd
}

func newDefaultsCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default value of every parameter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load()
			if err != nil {
				return err
			}
			return writeEncoded(cmd.OutOrStdout(), c.DefaultValues(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "json", "output format (json, yaml)")
	return cmd
}

func newFlagsCmd(opts *rootOptions) *cobra.Command {
	var tune bool
	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Print the command-line flags generated from the declarations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load()
			if err != nil {
				return err
			}
			add := c.AddFlags
			if tune {
				add = c.AddTuneFlags
			}
			fs, err := add(nil)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), fs.FlagUsages())
			return err
		},
	}
	cmd.Flags().BoolVar(&tune, "tune", false, "only constant parameters, as passed alongside a search")
	return cmd
}

func newSampleCmd(opts *rootOptions) *cobra.Command {
	var (
		seed  int64
		count int
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw trial configurations from the search space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			c, err := opts.load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			opts.logger.Debug().Int64("seed", seed).Int("count", count).Msg("sampling")

			r := rand.New(rand.NewSource(seed))
			encoder := json.NewEncoder(cmd.OutOrStdout())
			for i := 0; i < count; i++ {
				if err := encoder.Encode(c.Sample(r)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of trials")
	return cmd
}

func newParseCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse [-- ARGS...]",
		Short: "Parse arguments against the declared flags and print the values",
		Example: `  hparams parse -f hparams.yaml -- --dropout 0.1 --epochs 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load()
			if err != nil {
				return err
			}
			ns, err := c.ParseFlags(args)
			if err != nil {
				return err
			}
			return writeEncoded(cmd.OutOrStdout(), ns, format)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "json", "output format (json, yaml)")
	return cmd
}

func newConvertCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "convert OUTPUT",
		Short: "Write the declarations to another file, format taken from its extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load()
			if err != nil {
				return err
			}
			out := args[0]
			if format != "" {
				err = c.SaveAs(out, hparams.Format(format))
			} else {
				err = c.Save(out)
			}
			if err != nil {
				return err
			}
			opts.logger.Info().Str("file", out).Int("count", c.Len()).Msg("declarations written")
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format overriding the extension (yaml, json, toml)")
	return cmd
}
