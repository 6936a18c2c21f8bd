package asm

import (
	"strings"

	"github.com/wordasm/wordasm/diag"
	"github.com/wordasm/wordasm/isa"
)

// runFirstPass walks a.expanded, building the symbol table and encoding
// instructions and data into the code/data tables. Forward label
// references are left as pending slots for the second pass.
func (a *assembler) runFirstPass() error {
	a.rep.LineNumber = 0
	a.ic, a.dc = initialIC, initialDC

	for i, line := range a.expanded {
		a.rep.LineNumber = i + 1
		a.encodeLine(line)
	}

	a.rep.LineNumber = 0
	a.symbols.shiftData(a.ic)
	return nil
}

func (a *assembler) encodeLine(line string) {
	c := newCursor(line).consumeWhitespace()
	if c.isEmpty() || c.startsWith(comment) {
		return
	}

	rest := line
	if idx := strings.IndexByte(line, ':'); idx >= 0 {
		rest = a.checkLabelDecl(line, idx)
	}

	// Skip characters until a directive ('.') or instruction (lowercase
	// letter) is reached, reporting stray non-whitespace once per line.
	skip := newCursor(rest)
	reportedStray := false
	for !skip.isEmpty() {
		b := skip.str[0]
		if b == '.' || (b >= 'a' && b <= 'z') {
			break
		}
		if !whitespace(b) && !reportedStray {
			a.rep.Report(diag.InvalidCharBeforeStatement, diag.ExpandedFile)
			reportedStray = true
		}
		skip = skip.consume(1)
	}
	rest = skip.String()

	label, hasLabel := silentLabelName(line)

	if strings.HasPrefix(rest, ".") {
		a.encodeDirective(rest, label, hasLabel)
	} else {
		a.encodeInstruction(rest, label, hasLabel)
	}
}

func (a *assembler) encodeDirective(rest string, label string, hasLabel bool) {
	name, operandText, ok := directiveName(rest)
	if !ok {
		a.rep.Report(diag.InvalidDirectiveName, diag.ExpandedFile)
		return
	}

	if hasLabel {
		if name == isa.Data || name == isa.String {
			if !a.symbols.add(label, a.dc, PrimaryData) {
				a.rep.Report(diag.LabelDuplicate, diag.ExpandedFile)
			}
		} else {
			a.rep.Report(diag.LabelBeforeEntryExtern, diag.ExpandedFile)
		}
	}

	switch name {
	case isa.Data:
		a.encodeDataWords(operandText)
	case isa.String:
		a.encodeStringWords(operandText)
	case isa.Entry:
		// No effect in pass 1; resolved in pass 2.
	case isa.Extern:
		a.encodeExtern(operandText)
	}
}

func (a *assembler) encodeDataWords(rest string) {
	c := newCursor(rest)
	count := 0
	for {
		commas, next := c.consumeWhitespaceAndCommas()
		tok, after := next.field()
		if tok.isEmpty() {
			c = next
			break
		}
		if count > 0 && commas != 1 {
			a.rep.Report(diag.InvalidCommaCount, diag.ExpandedFile)
		}
		value, kind := validNumber(tok.String())
		if kind != diag.None {
			a.rep.Report(kind, diag.ExpandedFile)
		} else {
			a.data.append(isa.EncodeDataWord(value), "", a.rep.LineNumber, a.dc)
			a.dc++
		}
		count++
		c = after
	}
	if count == 0 {
		a.rep.Report(diag.DataNeedsOneNumber, diag.ExpandedFile)
	}
}

func (a *assembler) encodeStringWords(rest string) {
	c := newCursor(rest).consumeWhitespace()
	if !c.startsWithChar('"') {
		a.rep.Report(diag.StringMissingOpenQuote, diag.ExpandedFile)
		return
	}
	c = c.consume(1)
	body, after := c.consumeUntilChar('"')
	if !after.startsWithChar('"') {
		a.rep.Report(diag.StringMissingCloseQuote, diag.ExpandedFile)
		return
	}
	if !asciiOnly(body.String()) {
		a.rep.Report(diag.StringNonASCII, diag.ExpandedFile)
		return
	}
	for i := 0; i < len(body.str); i++ {
		a.data.append(isa.EncodeDataWord(int(body.str[i])), "", a.rep.LineNumber, a.dc)
		a.dc++
	}
	a.data.append(isa.EncodeDataWord(0), "", a.rep.LineNumber, a.dc)
	a.dc++
}

func (a *assembler) encodeExtern(rest string) {
	name, _ := newCursor(rest).consumeWhitespace().field()
	if name.isEmpty() {
		return
	}
	if !a.symbols.addExtern(name.String()) {
		a.rep.Report(diag.LabelDuplicate, diag.ExpandedFile)
	}
}

func (a *assembler) encodeInstruction(rest string, label string, hasLabel bool) {
	name, after, ok := instructionName(rest)
	if !ok {
		c := newCursor(rest).consumeWhitespace()
		if c.isEmpty() {
			a.rep.Report(diag.MissingInstructionName, diag.ExpandedFile)
		} else {
			a.rep.Report(diag.InvalidInstructionName, diag.ExpandedFile)
		}
		return
	}
	inst := isa.Lookup(name)

	var srcText, dstText string
	haveSrc, haveDst := false, false
	switch inst.NumOperand {
	case 0:
		if strings.TrimSpace(after) != "" {
			// Extra operands on a zero-operand instruction; treated the
			// same as an invalid operand count.
			a.rep.Report(diag.InvalidOperandCount, diag.ExpandedFile)
		}
	case 1:
		var commas int
		commas, dstText, after = operand(after)
		if commas != 0 {
			a.rep.Report(diag.InvalidCommaCount, diag.ExpandedFile)
		}
		haveDst = true
	case 2:
		var commas int
		commas, srcText, after = operand(after)
		if commas != 0 {
			a.rep.Report(diag.InvalidCommaCount, diag.ExpandedFile)
		}
		haveSrc = true
		commas, dstText, after = operand(after)
		if commas != 1 {
			a.rep.Report(diag.InvalidCommaCount, diag.ExpandedFile)
		}
		haveDst = true
	}

	a.checkNoExtraChars(after)

	srcMode, srcOK := isa.Mode(0), true
	if haveSrc {
		srcMode, srcOK = classifyMode(name, srcText)
	}
	dstMode, dstOK := isa.Mode(0), true
	if haveDst {
		dstMode, dstOK = classifyMode(name, dstText)
	}

	if haveSrc {
		if srcText == "" {
			a.rep.Report(diag.MissingSourceOperand, diag.ExpandedFile)
		} else if !srcOK || !inst.LegalSrc(srcMode) {
			a.rep.Report(diag.InvalidSourceOperand, diag.ExpandedFile)
		}
	}
	if haveDst {
		if dstText == "" {
			a.rep.Report(diag.MissingDestOperand, diag.ExpandedFile)
		} else if !dstOK || !inst.LegalDst(dstMode) {
			a.rep.Report(diag.InvalidDestOperand, diag.ExpandedFile)
		}
	}

	if hasLabel {
		if !a.symbols.add(label, a.ic, PrimaryCode) {
			a.rep.Report(diag.LabelDuplicate, diag.ExpandedFile)
		}
	}

	if !srcOK {
		srcMode = 0
	}
	if !dstOK {
		dstMode = 0
	}

	a.emitInstructionWords(inst, srcMode, srcText, dstMode, dstText)
}

// checkNoExtraChars reports kind 27 if rest has any non-whitespace
// content remaining.
func (a *assembler) checkNoExtraChars(rest string) {
	if strings.TrimSpace(rest) != "" {
		a.rep.Report(diag.ExtraCharsAfterInput, diag.ExpandedFile)
	}
}

// emitInstructionWords appends the first word and any operand words for
// one instruction statement to the code table, advancing ic.
func (a *assembler) emitInstructionWords(inst *isa.Instruction, srcMode isa.Mode, srcText string, dstMode isa.Mode, dstText string) {
	var srcReg, dstReg byte
	if srcMode == isa.DirectRegister {
		srcReg, _ = isa.RegisterNumber(srcText)
	}
	if dstMode == isa.DirectRegister {
		dstReg, _ = isa.RegisterNumber(dstText)
	}

	firstAddr := a.ic
	word := isa.EncodeFirstWord(inst.Opcode, inst.Funct, srcMode, srcReg, dstMode, dstReg)
	a.code.append(word, "", a.rep.LineNumber, firstAddr)
	a.ic++

	if srcText != "" && srcMode != isa.DirectRegister {
		a.emitOperandWord(srcMode, srcText)
	}
	if dstText != "" && dstMode != isa.DirectRegister {
		a.emitOperandWord(dstMode, dstText)
	}
}

// emitOperandWord appends one operand word. Immediate operands are fully
// resolved now; direct/relative operands are appended as pending slots
// for the second pass to fix up.
func (a *assembler) emitOperandWord(mode isa.Mode, text string) {
	switch mode {
	case isa.Immediate:
		value, _ := validNumber(text[1:])
		word := isa.EncodeOperandWord(value, isa.ARE{A: true})
		a.code.append(word, "", a.rep.LineNumber, a.ic)
	default: // Direct or Relative: pending, text carries the '&' prefix if present
		a.code.append(0, text, a.rep.LineNumber, a.ic)
	}
	a.ic++
}
