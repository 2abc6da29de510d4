package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// plainStyle renders kubectl-style tables: upper-case headers, no borders or
// separators, and three spaces between columns. The output stays easy to pipe to grep or awk.
var plainStyle = func() table.Style {
	style := table.StyleDefault
	style.Name = "plain"
	style.Options = table.OptionsNoBordersAndSeparators
	style.Box.PaddingLeft = ""
	style.Box.PaddingRight = "   "
	style.Format.Header = text.FormatUpper
	return style
}()

// NewTable creates a plain table writer that renders to output with the given headers.
func NewTable(output io.Writer, headers ...string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(output)
	t.SetStyle(plainStyle)

	row := make(table.Row, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	t.AppendHeader(row)
	return t
}
