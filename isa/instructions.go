package isa

// An Instruction describes one mnemonic of the target instruction set:
// its opcode and funct fields, the addressing modes legal for its source
// and destination operands, and its operand count.
type Instruction struct {
	Name       string // mnemonic, e.g. "mov"
	Opcode     byte
	Funct      byte
	SrcModes   []Mode // legal addressing modes for the source operand
	DstModes   []Mode // legal addressing modes for the destination operand
	NumOperand int    // 0, 1, or 2
}

// Instructions is the fixed, read-only table of the sixteen instructions.
// Order matches the reference assignment's INSTRUCTIONS table.
var Instructions = [...]Instruction{
	{"mov", 0, 0, []Mode{Immediate, Direct, DirectRegister}, []Mode{Direct, DirectRegister}, 2},
	{"cmp", 1, 0, []Mode{Immediate, Direct, DirectRegister}, []Mode{Immediate, Direct, DirectRegister}, 2},
	{"add", 2, 1, []Mode{Immediate, Direct, DirectRegister}, []Mode{Direct, DirectRegister}, 2},
	{"sub", 2, 2, []Mode{Immediate, Direct, DirectRegister}, []Mode{Direct, DirectRegister}, 2},
	{"lea", 4, 0, []Mode{Direct}, []Mode{Direct, DirectRegister}, 2},
	{"clr", 5, 1, nil, []Mode{Direct, DirectRegister}, 1},
	{"not", 5, 2, nil, []Mode{Direct, DirectRegister}, 1},
	{"inc", 5, 3, nil, []Mode{Direct, DirectRegister}, 1},
	{"dec", 5, 4, nil, []Mode{Direct, DirectRegister}, 1},
	{"jmp", 9, 1, nil, []Mode{Direct, Relative}, 1},
	{"bne", 9, 2, nil, []Mode{Direct, Relative}, 1},
	{"jsr", 9, 3, nil, []Mode{Direct, Relative}, 1},
	{"red", 12, 0, nil, []Mode{Direct, DirectRegister}, 1},
	{"prn", 13, 0, nil, []Mode{Immediate, Direct, DirectRegister}, 1},
	{"rts", 14, 0, nil, nil, 0},
	{"stop", 15, 0, nil, nil, 0},
}

var byName map[string]*Instruction

func init() {
	byName = make(map[string]*Instruction, len(Instructions))
	for i := range Instructions {
		byName[Instructions[i].Name] = &Instructions[i]
	}
}

// Lookup returns the instruction named name, or nil if name is not a
// known mnemonic.
func Lookup(name string) *Instruction {
	return byName[name]
}

// LegalSrc reports whether mode is a legal source-operand mode for inst.
func (inst *Instruction) LegalSrc(mode Mode) bool {
	return legal(inst.SrcModes, mode)
}

// LegalDst reports whether mode is a legal destination-operand mode for inst.
func (inst *Instruction) LegalDst(mode Mode) bool {
	return legal(inst.DstModes, mode)
}

// IsMnemonic reports whether name names one of the fixed instructions.
func IsMnemonic(name string) bool {
	_, ok := byName[name]
	return ok
}
