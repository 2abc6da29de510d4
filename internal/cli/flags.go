package cli

import (
	"github.com/spf13/cobra"
)

// CommandFlags holds the output flag values shared by the commands that report results.
type CommandFlags struct {
	// OutputFormat specifies the desired output format (table, json, yaml)
	OutputFormat string
	// Quiet suppresses progress indicators and non-essential output
	Quiet bool
}

// RegisterCommonFlags registers the shared output flags on cmd:
//   - --output/-o: Output format (table, json, yaml), default: "table"
//   - --quiet/-q: Suppress progress indicators
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", string(OutputFormatTable), "Output format (table, json, yaml)")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress progress indicators")
}

// Validate checks the flag values.
func (f *CommandFlags) Validate() error {
	return ValidateOutputFormat(f.OutputFormat)
}

// Format returns the parsed output format.
func (f *CommandFlags) Format() OutputFormat {
	return OutputFormat(f.OutputFormat)
}
