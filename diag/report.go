package diag

import (
	"fmt"
	"io"
)

// Stage identifies which file a diagnostic should be blamed on.
type Stage int

const (
	SourceFile   Stage = iota // the original .as file
	ExpandedFile              // the macro-expanded .am file
	Internal                  // no associated file
)

// Reporter accumulates the latest diagnostic kind seen while scanning a
// single file, along with the current line number, and renders
// diagnostics to an injected writer. Create one with NewReporter: a zero
// Reporter has no writer to report to.
//
// This mirrors the reference assembler's current_error_number /
// current_line_number pair, kept here as struct fields rather than
// package globals so that one Reporter exists per file being assembled.
type Reporter struct {
	w           io.Writer
	LatestError Kind
	LineNumber  int
}

// NewReporter returns a Reporter that writes diagnostic lines to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Reset clears the latest-error and line-number state, as happens at the
// start of each new file. Rescan phases within one file zero LineNumber
// directly instead, so that LatestError accumulates across the whole file.
func (r *Reporter) Reset() {
	r.LatestError = None
	r.LineNumber = 0
}

// Report prints a diagnostic line for kind at stage and records kind as
// the latest error number seen. Kind 38/39 are pseudo-diagnostics and are
// never printed or recorded even if passed here.
func (r *Reporter) Report(kind Kind, stage Stage) {
	if kind == sourceIsLabelNotRegister || kind == destIsLabelNotRegister {
		return
	}
	r.LatestError = kind
	switch stage {
	case SourceFile:
		fmt.Fprintf(r.w, "Error [%d] at line %d in the .as file: %s\n", kind, r.LineNumber, kind.Message())
	case ExpandedFile:
		fmt.Fprintf(r.w, "Error [%d] at line %d in the .am file: %s\n", kind, r.LineNumber, kind.Message())
	default:
		fmt.Fprintf(r.w, "Error [%d]: %s\n", kind, kind.Message())
	}
}

// Clean reports whether no error has been recorded since the last Reset.
func (r *Reporter) Clean() bool {
	return r.LatestError == None
}
