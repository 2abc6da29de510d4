package config

import (
	"fmt"
	"strings"
)

// ConfigurationError represents a structured error that occurs while reading or writing
// an env file.
type ConfigurationError struct {
	FilePath    string   `json:"filePath"`    // Full path to the file that caused the error
	FileName    string   `json:"fileName"`    // Base name of the file
	Key         string   `json:"key"`         // Offending key, if any
	Message     string   `json:"message"`     // Human-readable error message
	Details     string   `json:"details"`     // Additional details about the error
	Suggestions []string `json:"suggestions"` // Actionable suggestions to fix the error
}

// Error implements the error interface
func (ce ConfigurationError) Error() string {
	if ce.Key != "" {
		return fmt.Sprintf("%s: %s: %s", ce.FileName, ce.Key, ce.Message)
	}
	if ce.Details != "" {
		return fmt.Sprintf("%s: %s: %s", ce.FileName, ce.Message, ce.Details)
	}
	return fmt.Sprintf("%s: %s", ce.FileName, ce.Message)
}

// DetailedError returns a detailed error message with all context
func (ce ConfigurationError) DetailedError() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Configuration Error in %s", ce.FileName))
	if ce.FilePath != "" {
		parts = append(parts, fmt.Sprintf("  File: %s", ce.FilePath))
	}
	if ce.Key != "" {
		parts = append(parts, fmt.Sprintf("  Key: %s", ce.Key))
	}

	parts = append(parts, fmt.Sprintf("  Error: %s", ce.Message))

	if ce.Details != "" {
		parts = append(parts, fmt.Sprintf("  Details: %s", ce.Details))
	}

	if len(ce.Suggestions) > 0 {
		parts = append(parts, "  Suggestions:")
		for _, suggestion := range ce.Suggestions {
			parts = append(parts, fmt.Sprintf("    - %s", suggestion))
		}
	}

	return strings.Join(parts, "\n")
}
