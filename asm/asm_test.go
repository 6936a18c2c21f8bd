package asm

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wordasm/wordasm/isa"
)

func assembleSource(t *testing.T, src string) (*Result, string) {
	t.Helper()
	stem := filepath.Join(t.TempDir(), "test")
	if err := os.WriteFile(stem+".as", []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	r, err := AssembleFile(stem, &out)
	if err != nil {
		t.Fatal(err)
	}
	return r, out.String()
}

func findSymbol(symbols []Symbol, name string) *Symbol {
	for i := range symbols {
		if symbols[i].Name == name {
			return &symbols[i]
		}
	}
	return nil
}

func findSlot(slots []Slot, addr int) *Slot {
	for i := range slots {
		if slots[i].Address == addr {
			return &slots[i]
		}
	}
	return nil
}

func TestImmediateAndRegisterOperands(t *testing.T) {
	r, out := assembleSource(t, "\tmov #5, r1\n\tmov r1, r2\n\tstop\n")
	if !r.Succeeded {
		t.Fatalf("expected success, got output:\n%s", out)
	}

	mov := isa.Lookup("mov")
	stop := isa.Lookup("stop")

	want := []isa.Word{
		isa.EncodeFirstWord(mov.Opcode, mov.Funct, isa.Immediate, 0, isa.DirectRegister, 1),
		isa.EncodeOperandWord(5, isa.ARE{A: true}),
		isa.EncodeFirstWord(mov.Opcode, mov.Funct, isa.DirectRegister, 1, isa.DirectRegister, 2),
		isa.EncodeFirstWord(stop.Opcode, stop.Funct, isa.Immediate, 0, isa.Immediate, 0),
	}
	if len(r.Code) != len(want) {
		t.Fatalf("got %d code words, want %d", len(r.Code), len(want))
	}
	for i, w := range want {
		if r.Code[i].Word != w {
			t.Errorf("code[%d] = %06x, want %06x", i, r.Code[i].Word, w)
		}
	}
	if r.ICF != 100+len(want) {
		t.Errorf("ICF = %d, want %d", r.ICF, 100+len(want))
	}
}

func TestDataDirective(t *testing.T) {
	r, out := assembleSource(t, "NUM:\t.data 5, -3, 7\n\tstop\n")
	if !r.Succeeded {
		t.Fatalf("expected success, got output:\n%s", out)
	}
	if len(r.Data) != 3 {
		t.Fatalf("got %d data words, want 3", len(r.Data))
	}
	want := []int{5, -3, 7}
	for i, v := range want {
		if r.Data[i].Word != isa.EncodeDataWord(v) {
			t.Errorf("data[%d] = %06x, want %06x", i, r.Data[i].Word, isa.EncodeDataWord(v))
		}
	}

	sym := findSymbol(r.Symbols, "NUM")
	if sym == nil {
		t.Fatal("NUM not found in symbol table")
	}
	if sym.Primary != PrimaryData {
		t.Errorf("NUM primary kind = %v, want PrimaryData", sym.Primary)
	}
	// NUM was the first data symbol declared, so after the pass-1 shift its
	// address should equal the final instruction counter.
	if sym.Address != r.ICF {
		t.Errorf("NUM address = %d, want %d (ICF)", sym.Address, r.ICF)
	}
}

// TestStringUsesTrueASCII exercises the fixed .string encoding: every
// character, including digits, is encoded by its ASCII codepoint, never
// parsed as a number.
func TestStringUsesTrueASCII(t *testing.T) {
	r, out := assembleSource(t, "\t.string \"A1\"\n\tstop\n")
	if !r.Succeeded {
		t.Fatalf("expected success, got output:\n%s", out)
	}
	want := []isa.Word{
		isa.EncodeDataWord('A'),
		isa.EncodeDataWord('1'),
		isa.EncodeDataWord(0),
	}
	if len(r.Data) != len(want) {
		t.Fatalf("got %d data words, want %d", len(r.Data), len(want))
	}
	for i, w := range want {
		if r.Data[i].Word != w {
			t.Errorf("data[%d] = %06x, want %06x", i, r.Data[i].Word, w)
		}
	}
}

func TestEntryExternAndRelativeJump(t *testing.T) {
	src := "" +
		"\t.extern FAR\n" +
		"MAIN:\tmov FAR, r1\n" +
		"\t.entry MAIN\n" +
		"\tjmp &MAIN\n" +
		"\tstop\n"
	r, out := assembleSource(t, src)
	if !r.Succeeded {
		t.Fatalf("expected success, got output:\n%s", out)
	}

	main := findSymbol(r.Symbols, "MAIN")
	if main == nil {
		t.Fatal("MAIN not found in symbol table")
	}
	if main.Secondary != SecondaryEntry {
		t.Errorf("MAIN secondary kind = %v, want SecondaryEntry", main.Secondary)
	}
	if main.Address != 100 {
		t.Errorf("MAIN address = %d, want 100", main.Address)
	}

	if len(r.Entries) != 1 || r.Entries[0].Name != "MAIN" {
		t.Errorf("Entries = %+v, want one row for MAIN", r.Entries)
	}
	if len(r.Externs) != 1 || r.Externs[0].Name != "FAR" {
		t.Errorf("Externs = %+v, want one row for FAR", r.Externs)
	}
	// The FAR operand word for "mov FAR, r1" immediately follows the
	// instruction's first word at address 100.
	if r.Externs[0].Address != 101 {
		t.Errorf("extern reference address = %d, want 101", r.Externs[0].Address)
	}

	// "jmp &MAIN": first word at 102, operand word (the relative distance)
	// at 103, computed as MAIN's address (100) minus the jmp's own first
	// word address (102).
	slot := findSlot(r.Code, 103)
	if slot == nil {
		t.Fatal("no code slot at address 103")
	}
	want := isa.EncodeOperandWord(100-102, isa.ARE{A: true})
	if slot.Word != want {
		t.Errorf("jmp operand word = %06x, want %06x", slot.Word, want)
	}
}

func TestMacroExactMatchDoesNotExpandPrefix(t *testing.T) {
	src := "mcro dbl\n\tadd r1, r1\nmcroend\n\tdbl\n\tdblsomething r1, r2\n\tstop\n"
	r, _ := assembleSource(t, src)

	want := []string{"add r1, r1", "dblsomething r1, r2", "stop"}
	if len(r.Expanded) != len(want) {
		t.Fatalf("got %d expanded lines, want %d: %q", len(r.Expanded), len(want), r.Expanded)
	}
	for i, w := range want {
		if r.Expanded[i] != w {
			t.Errorf("expanded[%d] = %q, want %q", i, r.Expanded[i], w)
		}
	}
}

func TestDuplicateLabelReportsErrorAndSuppressesOutput(t *testing.T) {
	src := "FOO:\tmov #1, r1\nFOO:\tmov #2, r2\n\tstop\n"
	stem := filepath.Join(t.TempDir(), "dup")
	if err := os.WriteFile(stem+".as", []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	r, err := AssembleFile(stem, &out)
	if err != nil {
		t.Fatal(err)
	}
	if r.Succeeded {
		t.Fatal("expected assembly to fail on duplicate label")
	}
	if !strings.Contains(out.String(), "Error [11]") {
		t.Errorf("expected a kind-11 duplicate-label error, got:\n%s", out.String())
	}
	if _, err := os.Stat(stem + ".ob"); err == nil {
		t.Error(".ob file should not be written when assembly fails")
	}
}

// TestLineTooLongIsReported also guards against a preprocessing-only
// error being silently cleared before pass 1 finishes: line-too-long is
// detected during preprocessing, and nothing later in this source
// introduces a second error, so success must still be suppressed.
func TestLineTooLongIsReported(t *testing.T) {
	src := "\t.data " + strings.Repeat("1", maxLineLen) + "\n\tstop\n"
	r, out := assembleSource(t, src)
	if !strings.Contains(out, "Error [4]") {
		t.Errorf("expected a kind-4 line-too-long error, got:\n%s", out)
	}
	if r.Succeeded {
		t.Error("a preprocessing-only error must still suppress the success message and output files")
	}
	if strings.Contains(out, "Program succeeded") {
		t.Errorf("success message must not be printed alongside an error, got:\n%s", out)
	}
}

func TestMissingCommaBetweenOperandsReportsError(t *testing.T) {
	r, out := assembleSource(t, "\tmov r1 r2\n\tstop\n")
	if r.Succeeded {
		t.Fatal("expected failure on missing comma between operands")
	}
	if !strings.Contains(out, "Error [21]") {
		t.Errorf("expected a kind-21 comma-count error, got:\n%s", out)
	}
}

func TestExtraCommaBetweenOperandsReportsError(t *testing.T) {
	r, out := assembleSource(t, "\tmov r1,,r2\n\tstop\n")
	if r.Succeeded {
		t.Fatal("expected failure on doubled comma between operands")
	}
	if !strings.Contains(out, "Error [21]") {
		t.Errorf("expected a kind-21 comma-count error, got:\n%s", out)
	}
}
