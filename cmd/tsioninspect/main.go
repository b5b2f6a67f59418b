// Command tsioninspect is an interactive terminal browser for Tsion
// payloads: it decodes a document's dictionary and final content value
// and renders both as a scrollable tree, with a log pane showing the
// program's own slog output.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	tea "charm.land/bubbletea/v2"

	"go.tsion.dev/tsion"
	"go.tsion.dev/tsion/log"
	"go.tsion.dev/tsion/version"
)

func main() {
	logCfg := log.NewConfig()

	rootCmd := &cobra.Command{
		Use:           "tsioninspect [file|-]",
		Short:         "Browse a Tsion payload's dictionary and content as a tree",
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(logCfg, args)
		},
	}

	logCfg.RegisterFlags(rootCmd.Flags())

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(logCfg *log.Config, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	src, err := readPath(path)
	if err != nil {
		return err
	}

	dict, content, err := tsion.DecodeWithDictionary(string(src))
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	pub := log.NewPublisher()
	defer pub.Close()

	sub := pub.Subscribe()

	handler, err := logCfg.NewHandler(pub)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	slog.SetDefault(slog.New(handler))
	slog.Info("decoded document", slog.String("path", path), slog.Int("dictionary_entries", len(dict)))

	treeLines := buildTree(dict, content)

	m := newModel(path, treeLines, sub)

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.width = w
		m.height = h
	}

	p := tea.NewProgram(m)

	_, err = p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

func readPath(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return data, nil
}
