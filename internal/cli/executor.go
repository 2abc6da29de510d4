package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a kubectl-style plain table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatJSON formats output as JSON
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidOutputFormats contains all valid output format values.
var ValidOutputFormats = []OutputFormat{
	OutputFormatTable,
	OutputFormatJSON,
	OutputFormatYAML,
}

// ValidateOutputFormat validates that the given format string is a supported output format.
// Returns nil if valid, or an error with a helpful message listing valid formats.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: table, json, yaml)", format)
	}
}

// RunStep runs fn while a spinner with message is shown on w.
// With quiet set, or when w is not a terminal, fn runs without a spinner.
func RunStep(w io.Writer, quiet bool, message string, fn func() error) error {
	if quiet {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message + "..."
	s.Start()

	err := fn()
	if err != nil {
		s.FinalMSG = text.FgRed.Sprint("✗ "+message) + "\n"
	} else {
		s.FinalMSG = text.FgGreen.Sprint("✓ "+message) + "\n"
	}
	s.Stop()
	return err
}

// Print writes data in the requested structured format. Table output is handled by the caller.
func Print(w io.Writer, format OutputFormat, data interface{}) error {
	switch format {
	case OutputFormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case OutputFormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}
