package asm

import (
	"bufio"
	"fmt"
	"os"

	"github.com/wordasm/wordasm/diag"
	"github.com/wordasm/wordasm/isa"
)

// runSecondPass re-scans a.expanded for .entry declarations, resolves
// every pending direct/relative operand slot left by pass 1, and -- if
// the run is still clean -- writes the object file and, if non-empty,
// the entries and externals files.
func (a *assembler) runSecondPass(stem string) error {
	a.buildEntries()
	a.fixupCode()

	icf, dcf := a.ic, a.dc
	if icf-initialIC+dcf > maxWords {
		a.rep.Report(diag.TooManyWords, diag.Internal)
	}

	if !a.rep.Clean() {
		return nil
	}

	if err := a.writeObjectFile(stem, icf, dcf); err != nil {
		return err
	}
	if len(a.entries.rows) > 0 {
		if err := writeRefFile(stem+".ent", a.entries.rows); err != nil {
			return err
		}
	}
	if len(a.externs.rows) > 0 {
		if err := writeRefFile(stem+".ext", a.externs.rows); err != nil {
			return err
		}
	}
	return nil
}

// buildEntries re-scans the expanded source for ".entry <label>" lines,
// marking the named symbol's secondary kind and reporting kind 36/10 as
// applicable, then collects every entry-marked symbol into a.entries.
func (a *assembler) buildEntries() {
	for i, line := range a.expanded {
		a.rep.LineNumber = i + 1

		c := newCursor(line).consumeWhitespace()
		if c.isEmpty() || c.startsWith(comment) {
			continue
		}

		name, rest, ok := directiveName(line)
		if !ok || name != isa.Entry {
			continue
		}

		labelTok, after := newCursor(rest).consumeWhitespace().field()
		a.checkNoExtraChars(after.String())
		if labelTok.isEmpty() {
			continue
		}

		label := labelTok.String()
		sym := a.symbols.find(label)
		if sym == nil {
			a.rep.Report(diag.LabelNotFound, diag.ExpandedFile)
			continue
		}
		if sym.Secondary == SecondaryExternal {
			a.rep.Report(diag.LabelBothEntryAndExtern, diag.ExpandedFile)
			continue
		}
		sym.Secondary = SecondaryEntry
	}
	a.rep.LineNumber = 0

	for _, s := range a.symbols.rows {
		if s.Secondary == SecondaryEntry {
			a.entries.append(s.Name, s.Address)
		}
	}
}

// fixupCode resolves every code slot left pending by pass 1: a direct
// operand resolves to the target symbol's address (recording an extern
// reference if the symbol is external), a relative operand resolves to
// the distance from the preceding instruction word to the target.
func (a *assembler) fixupCode() {
	rows := a.code.rows
	for i := range rows {
		slot := &rows[i]
		if !slot.needsFixup() {
			continue
		}

		a.rep.LineNumber = slot.LineNumber

		if slot.Pending[0] == '&' {
			name := slot.Pending[1:]
			sym := a.symbols.find(name)
			if sym == nil {
				a.rep.Report(diag.LabelNeverDeclared, diag.ExpandedFile)
				continue
			}
			if sym.Secondary == SecondaryExternal {
				a.rep.Report(diag.ExternInRelative, diag.ExpandedFile)
			}
			distance := sym.Address - rows[i-1].Address
			slot.Word = isa.EncodeOperandWord(distance, isa.ARE{A: true})
			slot.Pending = ""
			continue
		}

		name := slot.Pending
		sym := a.symbols.find(name)
		if sym == nil {
			a.rep.Report(diag.LabelNeverDeclared, diag.ExpandedFile)
			continue
		}
		if sym.Secondary == SecondaryExternal {
			a.externs.append(sym.Name, slot.Address)
			slot.Word = isa.EncodeOperandWord(0, isa.ARE{E: true})
			slot.Pending = ""
			continue
		}
		slot.Word = isa.EncodeOperandWord(sym.Address, isa.ARE{R: true})
		slot.Pending = ""
	}
	a.rep.LineNumber = 0
}

// writeObjectFile writes stem+".ob": a header line giving the code and
// data word counts, then one "<address> <hex word>" line per code word
// followed by one per data word, data addresses continuing on from the
// final code address.
func (a *assembler) writeObjectFile(stem string, icf, dcf int) error {
	f, err := os.Create(stem + ".ob")
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "     %d %d\n", icf-initialIC, dcf)
	for _, s := range a.code.rows {
		fmt.Fprintf(bw, "%07d %s\n", s.Address, s.Word.Hex())
	}
	for _, s := range a.data.rows {
		fmt.Fprintf(bw, "%07d %s\n", s.Address+icf, s.Word.Hex())
	}
	return bw.Flush()
}

// writeRefFile writes one "<label> <address>" line per row of an
// entries or externals table.
func writeRefFile(path string, rows []refRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, r := range rows {
		fmt.Fprintf(bw, "%s %07d\n", r.Name, r.Address)
	}
	return bw.Flush()
}
