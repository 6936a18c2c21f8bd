// Package asm implements the two-pass assembler: macro preprocessing,
// a first pass that parses statements and builds the symbol/code/data
// tables, and a second pass that resolves forward references and emits
// the object, entries, and externals files.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wordasm/wordasm/diag"
)

const (
	initialIC  = 100
	initialDC  = 0
	maxWords   = 1 << 21
	maxLineLen = 80
	maxLabel   = 31
)

// Result holds everything a successful (or partially successful)
// assembly run produced, for callers that want programmatic access
// instead of (or in addition to) the written files.
type Result struct {
	Stem      string
	Expanded  []string // the .am file's lines, for the interactive shell
	Code      []Slot
	Data      []Slot
	Symbols   []Symbol
	Entries   []refRow
	Externs   []refRow
	ICF, DCF  int
	Succeeded bool
}

// assembler holds all per-file state for one run of the pipeline. A
// fresh assembler is created for every source file, so none of this
// state is process-wide -- see SPEC_FULL.md §9's note on keeping the
// reference implementation's single-counter simplicity without reaching
// for package-level globals.
type assembler struct {
	rep *diag.Reporter

	ic, dc int

	symbols *symbolTable
	code    *codeDataTable
	data    *codeDataTable
	macros  *macroTable
	entries *refTable
	externs *refTable

	expanded []string // lines of the .am file, populated by the preprocessor
}

func newAssembler(w io.Writer) *assembler {
	return &assembler{
		rep:     diag.NewReporter(w),
		ic:      initialIC,
		dc:      initialDC,
		symbols: newSymbolTable(),
		code:    &codeDataTable{},
		data:    &codeDataTable{},
		macros:  newMacroTable(),
		entries: &refTable{},
		externs: &refTable{},
	}
}

// AssembleFile runs the full pipeline against stem+".as", writing
// stem+".am" always, and stem+".ob" (and, if applicable, stem+".ent" /
// stem+".ext") only if assembly completes without error. It reports its
// outcome on w and returns the Result describing what happened.
func AssembleFile(stem string, w io.Writer) (*Result, error) {
	a := newAssembler(w)

	src, err := os.ReadFile(stem + ".as")
	if err != nil {
		a.rep.Report(diag.FileOpenFailed, diag.Internal)
		return nil, err
	}

	if err := a.runPreprocessor(stem, string(src)); err != nil {
		return a.result(stem, false), err
	}
	if err := a.runFirstPass(); err != nil {
		return a.result(stem, false), err
	}
	if err := a.runSecondPass(stem); err != nil {
		return a.result(stem, false), err
	}

	succeeded := a.rep.Clean()
	if succeeded {
		fmt.Fprintf(w, "Program succeeded for file: %s\n", stem)
	}
	return a.result(stem, succeeded), nil
}

func (a *assembler) result(stem string, succeeded bool) *Result {
	return &Result{
		Stem:      stem,
		Expanded:  a.expanded,
		Code:      a.code.rows,
		Data:      a.data.rows,
		Symbols:   a.symbols.rows,
		Entries:   a.entries.rows,
		Externs:   a.externs.rows,
		ICF:       a.ic,
		DCF:       a.dc,
		Succeeded: succeeded,
	}
}

// splitLines splits s into lines without a trailing empty line, the way
// every scan phase of this assembler walks its input.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// writeLines writes each of lines to path, one per line, trailing
// newline included, truncating any existing file at path.
func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	for _, l := range lines {
		if _, err := bw.WriteString(l); err != nil {
			return err
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
