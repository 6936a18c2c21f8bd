package shell

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadWithoutRunDoesNotPanic guards against calling Load before Run
// ever assigns an output writer -- the path main.go takes for a
// non-interactive invocation.
func TestLoadWithoutRunDoesNotPanic(t *testing.T) {
	stem := filepath.Join(t.TempDir(), "test")
	if err := os.WriteFile(stem+".as", []byte("\tstop\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New()
	r, err := s.Load(stem)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !r.Succeeded {
		t.Fatal("expected assembly to succeed")
	}
}
