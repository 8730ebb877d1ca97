package cli

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/pushdown/internal/predsql"
	"github.com/roach88/pushdown/internal/tupledomain"
)

// CompileResult holds the rendered SQL and its parameters.
type CompileResult struct {
	SQL    string       `json:"sql"`
	Params []ParamEntry `json:"params"`
}

// ParamEntry describes one bound parameter for display.
type ParamEntry struct {
	Position int    `json:"position"`
	Column   string `json:"column"`
	Type     string `json:"type"`
	Value    string `json:"value"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <filter.yaml>",
		Short: "Compile a filter file to parameterized SQL",
		Long: `Compile a YAML filter file to a parameterized SQL statement.

The filter's constraints become a WHERE clause with ? placeholders; the
parameter list is printed in binding order. No value is ever inlined into
the SQL text.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCompile(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, err := compileFilterFile(formatter, path)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		if err := formatter.SuccessJSON(result); err != nil {
			return err
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.SQL)
	for _, p := range result.Params {
		fmt.Fprintf(cmd.OutOrStdout(), "  ?%d  %s %s = %s\n", p.Position, p.Column, p.Type, p.Value)
	}
	return nil
}

// compileFilterFile loads, builds, and compiles a filter file, reporting
// failures through the formatter.
func compileFilterFile(formatter *OutputFormatter, path string) (*CompileResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		formatter.Error(ErrCodeNotFound, fmt.Sprintf("filter file not found: %s", path), nil)
		return nil, fmt.Errorf("filter file not found: %s", path)
	}

	filter, err := LoadFilterFile(path)
	if err != nil {
		formatter.Error(ErrCodeParse, err.Error(), nil)
		return nil, err
	}

	compiled, err := filter.Build()
	if err != nil {
		formatter.Error(ErrCodeParse, err.Error(), nil)
		return nil, err
	}
	formatter.VerboseLog("Compiling filter with %d constrained column(s)", len(compiled.TupleDomain.ColumnIndexes()))

	sqlText, binds, err := predsql.AppendWhere(
		compiled.BaseSQL,
		compiled.TupleDomain,
		compiled.ColumnNames,
		compiled.ColumnTypes,
		compiled.IdentifierColumns,
	)
	if err != nil {
		formatter.Error(ErrCodeCompile, err.Error(), nil)
		return nil, err
	}

	result := &CompileResult{SQL: sqlText, Params: make([]ParamEntry, 0, len(binds))}
	for i, bv := range binds {
		result.Params = append(result.Params, ParamEntry{
			Position: i + 1,
			Column:   compiled.ColumnNames[bv.ColumnIndex],
			Type:     bv.Type.String(),
			Value:    displayValue(bv.Value),
		})
	}
	return result, nil
}

// displayValue renders a bind value for human consumption. Binary values
// show as hex; they are never meant to round-trip through this output.
func displayValue(v tupledomain.Value) string {
	switch val := v.(type) {
	case tupledomain.Int64:
		return fmt.Sprintf("%d", int64(val))
	case tupledomain.Double:
		return fmt.Sprintf("%g", float64(val))
	case tupledomain.Bool:
		return fmt.Sprintf("%t", bool(val))
	case tupledomain.Text:
		return fmt.Sprintf("%q", string(val))
	case tupledomain.Bytes:
		return "0x" + hex.EncodeToString(val)
	case tupledomain.Null:
		return "NULL"
	default:
		return fmt.Sprintf("%v", v)
	}
}
