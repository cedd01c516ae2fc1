package lexer_test

import (
	"strings"
	"testing"

	"whilelang/pkg/lexer"
)

func TestNormalize(t *testing.T) {
	input := `// test comment
x = 5;

   // indented comment
   
a = 3;
	num Add(x, y): // trailing text is kept
`

	raw, err := lexer.ReadLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	if len(raw) != 7 {
		t.Fatalf("expected 7 raw lines, got %d", len(raw))
	}

	lines := lexer.Normalize(raw)
	expected := []string{"x = 5;", "a = 3;", "\tnum Add(x, y): // trailing text is kept"}

	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d: %v", len(expected), len(lines), lines)
	}

	for i, line := range lines {
		if line.Text != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], line.Text)
		}
		if line.Number != i+1 {
			t.Errorf("Line %d: expected number %d, got %d", i, i+1, line.Number)
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := lexer.ReadFile(t.TempDir() + "/missing.while"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
