package isa

import "testing"

func TestRegisterNumber(t *testing.T) {
	for i := 0; i < NumRegisters; i++ {
		name := "r" + string(rune('0'+i))
		n, ok := RegisterNumber(name)
		if !ok || int(n) != i {
			t.Errorf("RegisterNumber(%q) = (%d, %v), want (%d, true)", name, n, ok, i)
		}
	}
	if _, ok := RegisterNumber("r8"); ok {
		t.Error("r8 should not be a valid register")
	}
	if _, ok := RegisterNumber("R1"); ok {
		t.Error("register names are case-sensitive lowercase only")
	}
}

func TestIsRegister(t *testing.T) {
	if !IsRegister("r0") {
		t.Error("r0 should be a register")
	}
	if IsRegister("r1x") {
		t.Error("r1x should not be a register")
	}
}
