package isa

import "testing"

func TestIsDirective(t *testing.T) {
	for _, d := range []string{".data", ".string", ".entry", ".extern"} {
		if !IsDirective(d) {
			t.Errorf("%s should be a directive", d)
		}
	}
	if IsDirective("data") {
		t.Error("data without a leading dot is not a directive")
	}
}

func TestReserved(t *testing.T) {
	cases := map[string]bool{
		"mov":    true,  // instruction
		"r3":     true,  // register
		"data":   true,  // directive word, sans dot
		"extern": true,  // directive word, sans dot
		"foo":    false, // ordinary identifier
	}
	for name, want := range cases {
		if got := Reserved(name); got != want {
			t.Errorf("Reserved(%q) = %v, want %v", name, got, want)
		}
	}
}
