package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/spf13/cobra"
)

// filterSchema is the CUE schema every filter file must satisfy. Shape
// checks (field names, types, enum values) live here; cross-field rules
// (constraint columns exist, no duplicates) live in FilterFile.Build.
const filterSchema = `
#Filter: {
	base_sql: string & !=""
	columns: [#Column, ...#Column]
	constraints?: [...#Constraint]
}

#Column: {
	name:        string & !=""
	type:        "int64" | "double" | "bool" | "text" | "binary"
	identifier?: bool
}

#Constraint: {
	column:        string & !=""
	only_null?:    bool
	not_null?:     bool
	null_allowed?: bool
	values?: [...]
	ranges?: [...#Range]
}

#Range: {
	min?:           _
	min_exclusive?: bool
	max?:           _
	max_exclusive?: bool
}
`

// ValidationIssue is one schema or consistency failure in a filter file.
type ValidationIssue struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <filter.yaml>",
		Short: "Validate a filter file without compiling it",
		Long: `Validate a YAML filter file against the filter schema.

Checks field names, column types, and constraint shapes, then verifies the
constraints are internally consistent. Nothing is compiled or executed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		formatter.Error(ErrCodeNotFound, fmt.Sprintf("cannot read filter file: %v", err), nil)
		return err
	}

	issues := ValidateFilter(path, data)
	if len(issues) > 0 {
		if opts.Format == "json" {
			formatter.SuccessJSON(ValidationResult{Valid: false, Issues: issues})
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid\n", path)
			for _, issue := range issues {
				if issue.Line > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "  line %d: %s\n", issue.Line, issue.Message)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", issue.Message)
				}
			}
		}
		return fmt.Errorf("%d validation issue(s)", len(issues))
	}

	if opts.Format == "json" {
		return formatter.SuccessJSON(ValidationResult{Valid: true})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", path)
	return nil
}

// ValidateFilter checks filter YAML against the CUE schema and then the
// cross-field rules. The file name is used for error positions only.
func ValidateFilter(filename string, data []byte) []ValidationIssue {
	ctx := cuecontext.New()

	schema := ctx.CompileString(filterSchema)
	if err := schema.Err(); err != nil {
		// The schema is a compile-time constant; failing to compile it is a
		// bug in this package, surfaced as a single issue.
		return []ValidationIssue{{Message: fmt.Sprintf("internal schema error: %v", err)}}
	}
	def := schema.LookupPath(cue.ParsePath("#Filter"))

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return []ValidationIssue{{Message: fmt.Sprintf("parse yaml: %v", err)}}
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return cueIssues(err)
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return cueIssues(err)
	}

	// Schema passed; run the builder's consistency checks without keeping
	// the result.
	filter, err := ParseFilter(data)
	if err != nil {
		return []ValidationIssue{{Message: err.Error()}}
	}
	if _, err := filter.Build(); err != nil {
		return []ValidationIssue{{Message: err.Error()}}
	}

	return nil
}

// cueIssues flattens a CUE error into per-position issues.
func cueIssues(err error) []ValidationIssue {
	var issues []ValidationIssue
	for _, e := range cueerrors.Errors(err) {
		issue := ValidationIssue{Message: e.Error()}
		if pos := e.Position(); pos.IsValid() {
			issue.Line = pos.Line()
		}
		issues = append(issues, issue)
	}
	if len(issues) == 0 {
		issues = append(issues, ValidationIssue{Message: err.Error()})
	}
	return issues
}
