package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"schemac/internal/diag"
	"schemac/internal/source"
)

func sampleBagAndFileSet(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()

	fs := source.NewFileSetWithBase("/proj")
	fileID := fs.AddVirtual("point.toml", []byte("kind = \"struct\"\nname = \"Point\"\n"))
	span := source.Span{File: fileID, Start: 7, End: 15}

	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	diag.ReportError(reporter, diag.DupOrdinalOriginal, span, "ordinal 0 used twice").
		WithNote(span, "first used here").
		Emit()
	bag.Sort()

	return bag, fs
}

func TestPrettyRendersSeverityAndMessage(t *testing.T) {
	bag, fs := sampleBagAndFileSet(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, PathMode: PathModeBasename})

	out := buf.String()
	if !strings.Contains(out, "point.toml") {
		t.Fatalf("expected output to mention the file name, got %q", out)
	}
	if !strings.Contains(out, "ordinal 0 used twice") {
		t.Fatalf("expected output to mention the message, got %q", out)
	}
	if !strings.Contains(out, "note") {
		t.Fatalf("expected a rendered note, got %q", out)
	}
}

func TestJSONRendersDiagnosticsOutput(t *testing.T) {
	bag, fs := sampleBagAndFileSet(t)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"count": 1`) {
		t.Fatalf("expected count of 1, got %q", out)
	}
	if !strings.Contains(out, "ordinal 0 used twice") {
		t.Fatalf("expected the message in JSON output, got %q", out)
	}
}

func TestSarifRendersOneResultPerDiagnostic(t *testing.T) {
	bag, fs := sampleBagAndFileSet(t)

	var buf bytes.Buffer
	Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "schemac", ToolVersion: "test"})

	out := buf.String()
	if !strings.Contains(out, `"ruleId": "DUP2004"`) {
		t.Fatalf("expected a ruleId for the reported code, got %q", out)
	}
	if !strings.Contains(out, `"name": "schemac"`) {
		t.Fatalf("expected the tool name, got %q", out)
	}
}
