// Package main provides the CLI entry point for tsion, a tool for encoding
// and decoding the Tsion textual serialization format.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.tsion.dev/tsion"
	"go.tsion.dev/tsion/log"
	"go.tsion.dev/tsion/profile"
	"go.tsion.dev/tsion/version"
	"go.tsion.dev/tsion/yamlvalue"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the tsion root command and its subcommands. Split out
// from main so tests can construct a fresh command tree, redirect its I/O,
// and call Execute directly.
func newRootCmd() *cobra.Command {
	logCfg := log.NewConfig()
	profCfg := profile.NewConfig()

	var profiler *profile.Profiler

	rootCmd := &cobra.Command{
		Use:           "tsion",
		Short:         "Encode and decode the Tsion textual serialization format",
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			slog.SetDefault(slog.New(handler))

			profiler = profCfg.NewProfiler()

			return profiler.Start()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return profiler.Stop()
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := profCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.AddCommand(newEncodeCmd(), newDecodeCmd(), newConvertCmd())

	return rootCmd
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file|-]",
		Short: "Encode a YAML document as Tsion text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			v, err := yamlvalue.Parse(src)
			if err != nil {
				return fmt.Errorf("parse input as yaml: %w", err)
			}

			out, err := tsion.Encode(v)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			return writeOutput(cmd, []byte(out))
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file|-]",
		Short: "Decode Tsion text and print it as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			v, err := tsion.Decode(string(src))
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			out, err := yamlvalue.Emit(v)
			if err != nil {
				return fmt.Errorf("render as yaml: %w", err)
			}

			return writeOutput(cmd, out)
		},
	}
}

func newConvertCmd() *cobra.Command {
	cfg := yamlvalue.NewConfig()

	cmd := &cobra.Command{
		Use:   "convert [file|-]",
		Short: "Convert a document between YAML and Tsion text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			v, err := convertFrom(cfg.From, src)
			if err != nil {
				return err
			}

			out, err := convertTo(cfg.To, v)
			if err != nil {
				return err
			}

			return writeOutput(cmd, out)
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	if err := cfg.RegisterCompletions(cmd); err != nil {
		slog.Warn("register completions", slog.Any("error", err))
	}

	return cmd
}

func convertFrom(format string, src []byte) (tsion.Value, error) {
	switch format {
	case yamlvalue.FormatYAML:
		v, err := yamlvalue.Parse(src)
		if err != nil {
			return tsion.Value{}, fmt.Errorf("parse yaml: %w", err)
		}

		return v, nil
	case yamlvalue.FormatTsion:
		v, err := tsion.Decode(string(src))
		if err != nil {
			return tsion.Value{}, fmt.Errorf("decode tsion: %w", err)
		}

		return v, nil
	default:
		return tsion.Value{}, fmt.Errorf("%w: %q", yamlvalue.ErrUnknownFormat, format)
	}
}

func convertTo(format string, v tsion.Value) ([]byte, error) {
	switch format {
	case yamlvalue.FormatYAML:
		out, err := yamlvalue.Emit(v)
		if err != nil {
			return nil, fmt.Errorf("emit yaml: %w", err)
		}

		return out, nil
	case yamlvalue.FormatTsion:
		out, err := tsion.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("encode tsion: %w", err)
		}

		return []byte(out), nil
	default:
		return nil, fmt.Errorf("%w: %q", yamlvalue.ErrUnknownFormat, format)
	}
}

// readInput reads from args[0], or from cmd's configured input (stdin by
// default, overridable with [cobra.Command.SetIn] for testing) when args is
// empty or args[0] is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}

	return data, nil
}

// writeOutput writes data as is to cmd's configured output (stdout by
// default, overridable with [cobra.Command.SetOut] for testing). No newline
// is appended, so encoded Tsion text can be fed straight back to decode:
// [tsion.Decode] rejects anything after the final token.
func writeOutput(cmd *cobra.Command, data []byte) error {
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
