package interp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// goldenTest runs a .lox script and compares its output to a .golden file.
func goldenTest(t *testing.T, name string) {
	t.Helper()

	scriptPath := filepath.Join("..", "..", "testdata", name+".lox")
	goldenPath := filepath.Join("..", "..", "testdata", name+".golden")

	source, err := os.ReadFile(scriptPath)
	if err != nil {
		t.Fatalf("failed to read %s: %v", scriptPath, err)
	}
	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read %s: %v", goldenPath, err)
	}

	got, err := run(t, string(source))
	if err != nil {
		t.Fatalf("runtime error: %v", err)
	}

	gotStr := strings.TrimRight(got, "\n")
	wantStr := strings.TrimRight(string(want), "\n")
	if gotStr != wantStr {
		t.Errorf("output mismatch for %s:\n got:  %q\n want: %q", name, gotStr, wantStr)
	}
}

func TestGoldenClosures(t *testing.T) {
	goldenTest(t, "golden_closures")
}

func TestGoldenClasses(t *testing.T) {
	goldenTest(t, "golden_classes")
}

func TestGoldenControlFlow(t *testing.T) {
	goldenTest(t, "golden_control_flow")
}
