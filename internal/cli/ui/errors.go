package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// MessageLevel represents the severity of a user-facing message
type MessageLevel int

const (
	MessageLevelError MessageLevel = iota
	MessageLevelWarning
	MessageLevelInfo
)

// MessageOptions configures user-facing message formatting
type MessageOptions struct {
	Level        MessageLevel
	Context      string
	Problem      string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatMessage creates a standardized message with suggestions and help
// commands
//
// Example output:
//
//	✗ UNKNOWN EXTENSION: lable
//	   Did you mean: label?
//
//	   → See declared extensions: fieldmeta check --verbose
func FormatMessage(opts MessageOptions) string {
	var b strings.Builder

	var headerColor *color.Color
	var symbol string

	switch opts.Level {
	case MessageLevelError:
		headerColor = color.New(color.FgRed, color.Bold)
		symbol = "✗"
	case MessageLevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		symbol = "!"
	case MessageLevelInfo:
		headerColor = color.New(color.FgCyan, color.Bold)
		symbol = "•"
	}

	if opts.NoColor {
		headerColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if len(opts.Suggestions) > 0 {
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteMessage writes a formatted message to the writer
func WriteMessage(w io.Writer, opts MessageOptions) {
	fmt.Fprint(w, FormatMessage(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// UnknownExtensionError creates an unknown extension error with fuzzy
// suggestions from the declared kind and chain names
func UnknownExtensionError(name string, declared []string, noColor bool) string {
	return FormatMessage(MessageOptions{
		Level:       MessageLevelError,
		Context:     "UNKNOWN EXTENSION",
		Problem:     fmt.Sprintf("No kind or chain named '%s' is declared.", name),
		Suggestions: FindSimilar(name, declared),
		HelpCommands: []string{
			"List declarations: fieldmeta check --verbose",
		},
		NoColor: noColor,
	})
}

// UnknownRecordError creates an unknown record error with fuzzy suggestions
func UnknownRecordError(name string, declared []string, noColor bool) string {
	return FormatMessage(MessageOptions{
		Level:       MessageLevelError,
		Context:     "UNKNOWN RECORD",
		Problem:     fmt.Sprintf("No record named '%s' is declared.", name),
		Suggestions: FindSimilar(name, declared),
		HelpCommands: []string{
			"List declarations: fieldmeta check --verbose",
		},
		NoColor: noColor,
	})
}

// ConfigError creates a configuration error message
func ConfigError(message string, noColor bool) string {
	return FormatMessage(MessageOptions{
		Level:   MessageLevelError,
		Context: "CONFIGURATION ERROR",
		Problem: message,
		HelpCommands: []string{
			"View config: cat fieldmeta.yml",
			"Get help: fieldmeta --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a warning message
func Warning(message string, noColor bool) string {
	return FormatMessage(MessageOptions{
		Level:   MessageLevelWarning,
		Problem: message,
		NoColor: noColor,
	})
}

// Info creates an info message
func Info(message string, noColor bool) string {
	return FormatMessage(MessageOptions{
		Level:   MessageLevelInfo,
		Problem: message,
		NoColor: noColor,
	})
}
