package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCommonFlags(t *testing.T) {
	var flags CommandFlags
	cmd := &cobra.Command{Use: "test"}
	RegisterCommonFlags(cmd, &flags)

	assert.Equal(t, "table", flags.OutputFormat)
	assert.False(t, flags.Quiet)

	require.NoError(t, cmd.ParseFlags([]string{"-o", "yaml", "--quiet"}))
	assert.Equal(t, OutputFormatYAML, flags.Format())
	assert.True(t, flags.Quiet)
}

func TestCommandFlags_Validate(t *testing.T) {
	tests := []struct {
		name         string
		outputFormat string
		wantErr      bool
	}{
		{name: "table", outputFormat: "table"},
		{name: "json", outputFormat: "json"},
		{name: "yaml", outputFormat: "yaml"},
		{name: "wide is not supported", outputFormat: "wide", wantErr: true},
		{name: "empty", outputFormat: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := &CommandFlags{OutputFormat: tt.outputFormat}
			err := flags.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported output format")
				return
			}
			assert.NoError(t, err)
		})
	}
}
