package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestReportFormatsBySource(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.LineNumber = 7
	r.Report(LabelDuplicate, SourceFile)

	got := buf.String()
	if !strings.Contains(got, "line 7 in the .as file") {
		t.Errorf("expected .as-file framing, got %q", got)
	}
	if !strings.Contains(got, LabelDuplicate.Message()) {
		t.Errorf("expected message text, got %q", got)
	}
	if r.Clean() {
		t.Error("Clean() should be false after a reported error")
	}
}

func TestReportFormatsByExpandedFile(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.LineNumber = 3
	r.Report(InvalidDirectiveName, ExpandedFile)

	if !strings.Contains(buf.String(), "line 3 in the .am file") {
		t.Errorf("expected .am-file framing, got %q", buf.String())
	}
}

func TestReportInternalOmitsLineNumber(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Report(TooManyWords, Internal)

	got := buf.String()
	if strings.Contains(got, "line") {
		t.Errorf("internal diagnostics should not mention a line number, got %q", got)
	}
}

func TestPseudoKindsAreNeverReported(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Report(Kind(38), SourceFile)
	r.Report(Kind(39), SourceFile)

	if buf.Len() != 0 {
		t.Errorf("pseudo-diagnostics should produce no output, got %q", buf.String())
	}
	if !r.Clean() {
		t.Error("pseudo-diagnostics should not mark the reporter unclean")
	}
}

func TestResetClearsState(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.LineNumber = 5
	r.Report(LabelTooLong, SourceFile)
	r.Reset()

	if !r.Clean() {
		t.Error("Reset should clear LatestError")
	}
	if r.LineNumber != 0 {
		t.Errorf("Reset should clear LineNumber, got %d", r.LineNumber)
	}
}
