// Package shell implements an interactive inspection shell for completed
// assembly runs: once a source file has been assembled, its symbol,
// code, data, entries, and externs tables can be browsed without
// re-reading the written .ob/.ent/.ext files by hand.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/cmd"

	"github.com/wordasm/wordasm/asm"
)

// Shell holds every run loaded via "load" and the currently selected one.
type Shell struct {
	runs     map[string]*asm.Result
	current  *asm.Result
	settings *settings

	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	lastCmd     *cmd.Selection
	quit        bool
}

// New returns an empty shell, with no run yet loaded. Assembly diagnostics
// are written to os.Stdout until Run gives the shell an output of its own.
func New() *Shell {
	return &Shell{
		runs:     make(map[string]*asm.Result),
		settings: newSettings(),
		output:   bufio.NewWriter(os.Stdout),
	}
}

// Load assembles stem+".as" and makes its tables the current selection.
func (s *Shell) Load(stem string) (*asm.Result, error) {
	r, err := asm.AssembleFile(stem, s.output)
	s.output.Flush()
	if err != nil {
		return nil, err
	}
	s.runs[stem] = r
	s.current = r
	return r, nil
}

// Run reads commands from r and writes output to w until the "quit"
// command is given or r reaches EOF. When interactive is true, a prompt
// is displayed before each command.
func (s *Shell) Run(r io.Reader, w io.Writer, interactive bool) {
	s.input = bufio.NewScanner(r)
	s.output = bufio.NewWriter(w)
	s.interactive = interactive
	defer s.output.Flush()

	for !s.quit {
		if s.interactive {
			fmt.Fprint(s.output, "> ")
			s.output.Flush()
		}
		if !s.input.Scan() {
			return
		}
		if err := s.process(strings.TrimSpace(s.input.Text())); err != nil {
			fmt.Fprintf(s.output, "ERROR: %v\n", err)
		}
		s.output.Flush()
	}
}

func (s *Shell) process(line string) error {
	var c cmd.Selection
	if line != "" {
		var err error
		c, err = cmds.Lookup(line)
		switch {
		case errors.Is(err, cmd.ErrNotFound):
			fmt.Fprintln(s.output, "Command not found.")
			return nil
		case errors.Is(err, cmd.ErrAmbiguous):
			fmt.Fprintln(s.output, "Command is ambiguous.")
			return nil
		case err != nil:
			return err
		}
	} else if s.lastCmd != nil {
		c = *s.lastCmd
	} else {
		return nil
	}

	if c.Command == nil {
		return nil
	}
	if c.Command.Data == nil && c.Command.Subtree != nil {
		fmt.Fprintf(s.output, "%s commands:\n", c.Command.Subtree.Title)
		for _, cc := range c.Command.Subtree.Commands {
			if cc.Brief != "" {
				fmt.Fprintf(s.output, "    %-15s  %s\n", cc.Name, cc.Brief)
			}
		}
		return nil
	}

	s.lastCmd = &c
	handler := c.Command.Data.(func(*Shell, cmd.Selection) error)
	return handler(s, c)
}

func (s *Shell) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		fmt.Fprintf(s.output, "%s commands:\n", cmds.Title)
		for _, cc := range cmds.Commands {
			if cc.Brief != "" {
				fmt.Fprintf(s.output, "    %-15s  %s\n", cc.Name, cc.Brief)
			}
		}
		return nil
	}

	sel, err := cmds.Lookup(strings.Join(c.Args, " "))
	if err != nil {
		fmt.Fprintf(s.output, "%v\n", err)
		return nil
	}
	if sel.Command.Usage != "" {
		fmt.Fprintf(s.output, "Usage: %s\n\n", sel.Command.Usage)
	}
	switch {
	case sel.Command.Description != "":
		fmt.Fprintf(s.output, "%s\n", sel.Command.Description)
	case sel.Command.Brief != "":
		fmt.Fprintf(s.output, "%s.\n", sel.Command.Brief)
	}
	return nil
}

func (s *Shell) cmdLoad(c cmd.Selection) error {
	if len(c.Args) != 1 {
		return errors.New("usage: load <stem>")
	}
	r, err := s.Load(c.Args[0])
	if err != nil {
		return err
	}
	if r.Succeeded {
		fmt.Fprintf(s.output, "Loaded %s (%d code, %d data words).\n", r.Stem, r.ICF-100, r.DCF)
	} else {
		fmt.Fprintf(s.output, "Assembly of %s failed; tables reflect partial progress.\n", r.Stem)
	}
	return nil
}

func (s *Shell) requireCurrent() (*asm.Result, error) {
	if s.current == nil {
		return nil, errors.New("no run loaded; use 'load <stem>' first")
	}
	return s.current, nil
}

func (s *Shell) cmdSymbols(c cmd.Selection) error {
	r, err := s.requireCurrent()
	if err != nil {
		return err
	}
	s.paginate(len(r.Symbols), func(i int) {
		sym := r.Symbols[i]
		fmt.Fprintf(s.output, "  %-31s %s  %-6s %s\n",
			sym.Name, s.hex7(sym.Address), primaryName(sym.Primary), secondaryName(sym.Secondary))
	})
	return nil
}

func (s *Shell) cmdCode(c cmd.Selection) error {
	r, err := s.requireCurrent()
	if err != nil {
		return err
	}
	s.paginate(len(r.Code), func(i int) { s.printSlot(r.Code[i]) })
	return nil
}

func (s *Shell) cmdData(c cmd.Selection) error {
	r, err := s.requireCurrent()
	if err != nil {
		return err
	}
	s.paginate(len(r.Data), func(i int) { s.printSlot(r.Data[i]) })
	return nil
}

// paginate calls printRow for each of the n rows in order, pausing until a
// line of input is read every PageSize rows when the shell is running
// interactively.
// Non-interactive runs (e.g. piped input) print every row without pausing.
func (s *Shell) paginate(n int, printRow func(i int)) {
	page := s.settings.PageSize
	for i := 0; i < n; i++ {
		printRow(i)
		if s.interactive && page > 0 && (i+1)%page == 0 && i+1 < n {
			fmt.Fprint(s.output, "-- more --")
			s.output.Flush()
			s.input.Scan()
		}
	}
}

func (s *Shell) printSlot(slot asm.Slot) {
	if slot.Pending != "" && s.settings.ShowPending {
		fmt.Fprintf(s.output, "  %s <pending: %s>\n", s.hex7(slot.Address), slot.Pending)
		return
	}
	fmt.Fprintf(s.output, "  %s %s\n", s.hex7(slot.Address), s.hexWord(slot.Word))
}

func (s *Shell) cmdEntries(c cmd.Selection) error {
	r, err := s.requireCurrent()
	if err != nil {
		return err
	}
	s.paginate(len(r.Entries), func(i int) {
		e := r.Entries[i]
		fmt.Fprintf(s.output, "  %-31s %s\n", e.Name, s.hex7(e.Address))
	})
	return nil
}

func (s *Shell) cmdExterns(c cmd.Selection) error {
	r, err := s.requireCurrent()
	if err != nil {
		return err
	}
	s.paginate(len(r.Externs), func(i int) {
		e := r.Externs[i]
		fmt.Fprintf(s.output, "  %-31s %s\n", e.Name, s.hex7(e.Address))
	})
	return nil
}

func (s *Shell) cmdDump(c cmd.Selection) error {
	if len(c.Args) != 1 {
		return errors.New("usage: dump <stem>")
	}
	r, ok := s.runs[c.Args[0]]
	if !ok {
		return fmt.Errorf("%s has not been loaded", c.Args[0])
	}
	s.paginate(len(r.Expanded), func(i int) {
		fmt.Fprintf(s.output, "%4d  %s\n", i+1, r.Expanded[i])
	})
	return nil
}

func (s *Shell) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		s.settings.Display(s.output)
		return nil
	case 2:
		return s.settings.Set(c.Args[0], c.Args[1])
	default:
		return errors.New("usage: set [<setting> <value>]")
	}
}

func (s *Shell) cmdQuit(c cmd.Selection) error {
	s.quit = true
	return nil
}

func (s *Shell) hex7(addr int) string {
	if s.settings.HexUpper {
		return fmt.Sprintf("%07X", addr)
	}
	return fmt.Sprintf("%07d", addr)
}

func (s *Shell) hexWord(w interface{ Hex() string }) string {
	h := w.Hex()
	if s.settings.HexUpper {
		return strings.ToUpper(h)
	}
	return h
}

func primaryName(p asm.PrimaryKind) string {
	switch p {
	case asm.PrimaryCode:
		return "code"
	case asm.PrimaryData:
		return "data"
	default:
		return "-"
	}
}

func secondaryName(sec asm.SecondaryKind) string {
	switch sec {
	case asm.SecondaryEntry:
		return "entry"
	case asm.SecondaryExternal:
		return "extern"
	default:
		return ""
	}
}
