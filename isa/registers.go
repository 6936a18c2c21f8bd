package isa

import "strconv"

// NumRegisters is the number of general-purpose registers, r0..r7.
const NumRegisters = 8

var registerNames = func() map[string]byte {
	m := make(map[string]byte, NumRegisters)
	for i := 0; i < NumRegisters; i++ {
		m["r"+strconv.Itoa(i)] = byte(i)
	}
	return m
}()

// RegisterNumber returns the register number for name ("r0".."r7") and
// true, or (0, false) if name does not name a register.
func RegisterNumber(name string) (byte, bool) {
	n, ok := registerNames[name]
	return n, ok
}

// IsRegister reports whether name is one of the register names.
func IsRegister(name string) bool {
	_, ok := registerNames[name]
	return ok
}
