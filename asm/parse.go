package asm

import (
	"strconv"

	"github.com/wordasm/wordasm/diag"
	"github.com/wordasm/wordasm/isa"
)

// directiveName returns the directive at the start of s (after skipping
// leading whitespace) and the remainder of the line after it, if s
// starts with one of the four directive names followed by whitespace or
// end of line.
func directiveName(s string) (name, rest string, ok bool) {
	c := newCursor(s).consumeWhitespace()
	for _, d := range []string{isa.Data, isa.String, isa.Entry, isa.Extern} {
		if c.startsWithString(d) {
			after := c.consume(len(d))
			if after.isEmpty() || after.startsWith(whitespace) {
				return d, after.String(), true
			}
		}
	}
	return "", s, false
}

// instructionName returns the instruction mnemonic at the start of s
// (after skipping leading whitespace) and the remainder of the line, if
// s starts with one of the sixteen mnemonics followed by whitespace or
// end of line.
func instructionName(s string) (name, rest string, ok bool) {
	c := newCursor(s).consumeWhitespace()
	for i := range isa.Instructions {
		n := isa.Instructions[i].Name
		if c.startsWithString(n) {
			after := c.consume(len(n))
			if after.isEmpty() || after.startsWith(whitespace) {
				return n, after.String(), true
			}
		}
	}
	return "", s, false
}

// operand consumes one instruction operand: it skips leading whitespace
// and commas (returning the count seen), then scans a wordChar run.
func operand(s string) (commas int, word, rest string) {
	c := newCursor(s)
	n, c := c.consumeWhitespaceAndCommas()
	tok, remain := c.field()
	return n, tok.String(), remain.String()
}

// checkLabelDecl validates the label declaration that precedes the ':' at
// colonIdx in line, reporting kind 17/33/18/19/12 as applicable. It
// always returns the text after the colon, regardless of validity,
// mirroring the reference parser's "advance past the colon no matter
// what" behavior.
func (a *assembler) checkLabelDecl(line string, colonIdx int) (rest string) {
	label := line[:colonIdx]
	rest = line[colonIdx+1:]

	if label == "" {
		a.rep.Report(diag.MissingLabel, diag.ExpandedFile)
		return
	}
	if !alpha(label[0]) {
		a.rep.Report(diag.LabelMustStartAlpha, diag.ExpandedFile)
	}

	invalidChars := false
	for i := 0; i < len(label); i++ {
		if !alnum(label[i]) && !invalidChars {
			a.rep.Report(diag.LabelMustBeAlnum, diag.ExpandedFile)
			invalidChars = true
		}
	}
	if len(label) > maxLabel {
		a.rep.Report(diag.LabelTooLong, diag.ExpandedFile)
	}
	if isa.Reserved(label) {
		a.rep.Report(diag.LabelNameReserved, diag.ExpandedFile)
	}
	return
}

// silentLabelName extracts the label declared at the start of line (after
// skipping leading whitespace), the way the reference parser's
// non-advancing, non-reporting get_label_name works: it requires an
// alphabetic first character, an alphanumeric run, and a literal ':'
// immediately afterward, with no reporting of malformed input.
func silentLabelName(line string) (name string, ok bool) {
	c := newCursor(line).consumeWhitespace()
	if !c.startsWith(alpha) {
		return "", false
	}
	tok, rest := c.consumeWhile(alnum)
	if !rest.startsWithChar(':') {
		return "", false
	}
	return tok.String(), true
}

// validNumber validates an (optionally signed) decimal integer literal
// and returns its value. kind is diag.None on success.
func validNumber(s string) (value int, kind diag.Kind) {
	if s == "" {
		return 0, diag.NumberIllegalChar
	}
	neg := false
	i := 0
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		i++
	}
	digits := s[i:]
	if len(digits) > 0 && digits[0] == '0' {
		return 0, diag.NumberStartsWithZero
	}
	for j := 0; j < len(digits); j++ {
		if !decimal(digits[j]) {
			return 0, diag.NumberIllegalChar
		}
	}
	if digits == "" {
		return 0, diag.NumberIllegalChar
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, diag.NumberIllegalChar
	}
	if neg {
		n = -n
	}
	return n, diag.None
}

// validLabelSyntax reports whether s is alphabetic-first, alphanumeric
// thereafter, with nothing else -- the syntax check used when
// classifying direct/relative operands (length is not checked here; that
// is a label-declaration-time concern only).
func validLabelSyntax(s string) bool {
	if s == "" || !alpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !alnum(s[i]) {
			return false
		}
	}
	return true
}

// classifyMode determines the addressing mode of operand for instruction
// instrName. ok is false if operand does not parse as any legal mode
// syntax at all (the "GARBAGE_VALUE" case in the reference parser).
func classifyMode(instrName, operand string) (mode isa.Mode, ok bool) {
	if operand == "" {
		return 0, false
	}
	if operand[0] == '#' {
		if _, kind := validNumber(operand[1:]); kind == diag.None {
			return isa.Immediate, true
		}
	}
	if isa.IsRegister(operand) {
		return isa.DirectRegister, true
	}
	if isRelativeCapable(instrName) && len(operand) > 1 && operand[0] == '&' && validLabelSyntax(operand[1:]) {
		return isa.Relative, true
	}
	if validLabelSyntax(operand) {
		return isa.Direct, true
	}
	return 0, false
}

func isRelativeCapable(instrName string) bool {
	return instrName == "jmp" || instrName == "bne" || instrName == "jsr"
}
