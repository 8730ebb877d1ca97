package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/pushdown/internal/store"
	"github.com/roach88/pushdown/internal/uuidutil"
)

// QueryResult holds the rows returned by a filtered query.
type QueryResult struct {
	SQL     string           `json:"sql"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <filter.yaml> <database>",
		Short: "Run a filter file against a SQLite database",
		Long: `Compile a filter file and execute it against a SQLite database.

The filter's base SQL plus the compiled WHERE clause is prepared, the
parameters are bound in placeholder order, and the matching rows are
streamed to the output.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runQuery(opts *RootOptions, filterPath, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", dbPath), nil)
		return fmt.Errorf("database not found: %s", dbPath)
	}

	filter, err := LoadFilterFile(filterPath)
	if err != nil {
		formatter.Error(ErrCodeParse, err.Error(), nil)
		return err
	}
	compiled, err := filter.Build()
	if err != nil {
		formatter.Error(ErrCodeParse, err.Error(), nil)
		return err
	}

	s, err := store.Open(dbPath)
	if err != nil {
		formatter.Error(ErrCodeQuery, err.Error(), nil)
		return err
	}
	defer s.Close()

	rows, err := s.Select(
		cmd.Context(),
		compiled.BaseSQL,
		compiled.ColumnNames,
		compiled.ColumnTypes,
		compiled.IdentifierColumns,
		compiled.TupleDomain,
	)
	if err != nil {
		formatter.Error(ErrCodeQuery, err.Error(), nil)
		return err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		formatter.Error(ErrCodeQuery, err.Error(), nil)
		return err
	}

	result := QueryResult{Columns: columns, Rows: []map[string]any{}}
	values := make([]any, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			formatter.Error(ErrCodeQuery, err.Error(), nil)
			return err
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = presentValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		formatter.Error(ErrCodeQuery, err.Error(), nil)
		return err
	}
	formatter.VerboseLog("Query returned %d row(s)", len(result.Rows))

	if opts.Format == "json" {
		return formatter.SuccessJSON(result)
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(columns, "\t"))
	for _, row := range result.Rows {
		fields := make([]string, len(columns))
		for i, col := range columns {
			fields[i] = fmt.Sprintf("%v", row[col])
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(fields, "\t"))
	}
	return nil
}

// presentValue makes driver values printable: 16-byte blobs are shown as
// canonical UUID text, other blobs as strings.
func presentValue(v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	if len(b) == uuidutil.Size {
		if text, err := uuidutil.BytesToUUID(b); err == nil {
			return text
		}
	}
	return string(b)
}
