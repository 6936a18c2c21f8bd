package isa

// The four assembler directives.
const (
	Data   = ".data"
	String = ".string"
	Entry  = ".entry"
	Extern = ".extern"
)

var directives = [...]string{Data, String, Entry, Extern}

// IsDirective reports whether name is one of the four directives.
func IsDirective(name string) bool {
	for _, d := range directives {
		if d == name {
			return true
		}
	}
	return false
}

// Reserved reports whether name collides with an instruction mnemonic,
// a directive (without its leading dot), or a register name. Label and
// macro names must not collide with any of these.
func Reserved(name string) bool {
	return IsMnemonic(name) || IsRegister(name) || isDirectiveWord(name)
}

func isDirectiveWord(name string) bool {
	for _, d := range directives {
		if d[1:] == name {
			return true
		}
	}
	return false
}
