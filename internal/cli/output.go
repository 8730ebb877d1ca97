package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error codes used in CLI error responses.
const (
	ErrCodeNotFound = "E001" // filter or database file missing
	ErrCodeParse    = "E002" // filter file cannot be parsed
	ErrCodeSchema   = "E003" // filter file fails schema validation
	ErrCodeCompile  = "E004" // predicate compilation failed
	ErrCodeQuery    = "E005" // query execution failed
)

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// SuccessJSON outputs a successful payload as JSON. Text-format commands
// render their own output and skip this.
func (f *OutputFormatter) SuccessJSON(data any) error {
	return json.NewEncoder(f.Writer).Encode(CLIResponse{
		Status: "ok",
		Data:   data,
	})
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Logs go to ErrWriter when set so JSON output is never corrupted.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
