package yamlvalue

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Format names accepted by the tsion CLI's --from/--to flags.
const (
	FormatYAML  = "yaml"
	FormatTsion = "tsion"
)

// Flags holds CLI flag names for format-selection configuration.
type Flags struct {
	From string
	To   string
}

// Config holds CLI flag values selecting the source and destination
// formats for the tsion convert subcommand.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags Flags
	From  string
	To    string
}

// NewConfig returns a new [Config] with default flag names and formats.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{From: "from", To: "to"},
		From:  FormatYAML,
		To:    FormatTsion,
	}
}

// RegisterFlags adds format-selection flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.From, c.Flags.From, c.From,
		"source format: yaml or tsion")
	flags.StringVar(&c.To, c.Flags.To, c.To,
		"destination format: yaml or tsion")
}

// RegisterCompletions registers shell completions for the format flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	formats := cobra.FixedCompletions([]string{FormatYAML, FormatTsion}, cobra.ShellCompDirectiveNoFileComp)

	if err := cmd.RegisterFlagCompletionFunc(c.Flags.From, formats); err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.From, err)
	}

	if err := cmd.RegisterFlagCompletionFunc(c.Flags.To, formats); err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.To, err)
	}

	return nil
}

// Validate reports an error if From or To is not a recognized format, or
// if both name the same format.
func (c *Config) Validate() error {
	if !isFormat(c.From) {
		return fmt.Errorf("%w: --%s %q", ErrUnknownFormat, c.Flags.From, c.From)
	}

	if !isFormat(c.To) {
		return fmt.Errorf("%w: --%s %q", ErrUnknownFormat, c.Flags.To, c.To)
	}

	if c.From == c.To {
		return fmt.Errorf("%w: --%s and --%s are both %q", ErrSameFormat, c.Flags.From, c.Flags.To, c.From)
	}

	return nil
}

func isFormat(s string) bool {
	return s == FormatYAML || s == FormatTsion
}
