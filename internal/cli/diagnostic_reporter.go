package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/routedoc/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
	}
}

// SetOutput redirects the report
func (r *DiagnosticReporter) SetOutput(w io.Writer) {
	r.out = w
}

// ReportError reports err, expanding collected errors one by one
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	fmt.Fprintf(r.out, "\nERROR: Documentation Collection Failed\n")
	fmt.Fprintf(r.out, "======================================\n\n")

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		for i, e := range multi.Errors {
			if i > 0 {
				fmt.Fprintln(r.out)
			}
			r.reportRouteDocError(e)
		}
		return
	}

	var rde errors.RouteDocError
	if stderrors.As(err, &rde) {
		r.reportRouteDocError(rde)
		return
	}

	fmt.Fprintf(r.out, "Message: %s\n", err.Error())
}

// reportRouteDocError reports a single error with its location, context and suggestions
func (r *DiagnosticReporter) reportRouteDocError(err errors.RouteDocError) {
	header := color.New(color.FgRed, color.Bold)
	header.Fprintf(r.out, "%s", err.ErrorCode())
	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, " at %s", loc)
	}
	fmt.Fprintln(r.out)

	message := err.Error()
	if loc := err.Location(); !loc.IsEmpty() {
		message = strings.TrimPrefix(message, loc.String()+": ")
	}
	fmt.Fprintf(r.out, "  %s\n", message)

	if r.verbose {
		r.printContext(err.Context())
	}

	for _, suggestion := range err.Suggestions() {
		fmt.Fprintf(r.out, "  hint: %s\n", suggestion)
	}
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]any) {
	if len(context) == 0 {
		return
	}
	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(r.out, "  %s: %v\n", formatContextKey(key), context[key])
	}
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// ReportWarning reports a non-fatal problem
func (r *DiagnosticReporter) ReportWarning(message string) {
	warn := color.New(color.FgYellow, color.Bold)
	warn.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}
