package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Handler is the [slog.Handler] type returned by [NewHandler] and
// [NewHandlerFromStrings].
type Handler = slog.Handler

// Level is a logging severity, parsed from a CLI-friendly string.
type Level string

const (
	// LevelError logs only errors.
	LevelError Level = "error"
	// LevelWarn logs warnings and errors.
	LevelWarn Level = "warn"
	// LevelInfo logs informational messages, warnings, and errors.
	LevelInfo Level = "info"
	// LevelDebug logs everything, including debug messages.
	LevelDebug Level = "debug"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt format.
	FormatLogfmt Format = "logfmt"
	// FormatText outputs logs as human-readable text (an alias for
	// [FormatLogfmt]'s handler; kept distinct at the string level since
	// callers may pass either word on the command line).
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// NewHandlerFromStrings creates a [Handler] by parsing level and format
// strings.
func NewHandlerFromStrings(w io.Writer, level, format string) (Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	fmt_, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, fmt_), nil
}

// NewHandler creates a [Handler] with the given level and format.
func NewHandler(w io.Writer, level Level, format Format) Handler {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     level.slogLevel(),
	}

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatLogfmt, FormatText:
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// slogLevel converts l to its [slog.Level] equivalent.
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a log level string, case-insensitively, into a [Level].
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}

	return "", ErrUnknownLogLevel
}

// ParseFormat parses a log format string, case-insensitively, into a
// [Format].
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if slices.Contains(GetAllFormats(), f) {
		return f, nil
	}

	return "", ErrUnknownLogFormat
}

// GetAllLevels returns every recognized [Level], in severity order.
func GetAllLevels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelWarn, LevelError}
}

// GetAllLevelStrings returns [GetAllLevels] as plain strings, for use in
// flag help text and shell completion.
func GetAllLevelStrings() []string {
	levels := GetAllLevels()
	out := make([]string, len(levels))

	for i, l := range levels {
		out[i] = string(l)
	}

	return out
}

// GetAllFormats returns every recognized [Format].
func GetAllFormats() []Format {
	return []Format{FormatJSON, FormatLogfmt, FormatText}
}

// GetAllFormatStrings returns [GetAllFormats] as plain strings, for use in
// flag help text and shell completion.
func GetAllFormatStrings() []string {
	formats := GetAllFormats()
	out := make([]string, len(formats))

	for i, f := range formats {
		out[i] = string(f)
	}

	return out
}
