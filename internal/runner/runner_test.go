package runner_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"whilelang/internal/config"
	"whilelang/internal/runner"
	"whilelang/pkg/color"
	"whilelang/pkg/diag"
	"whilelang/pkg/store"
)

const factorialSource = `// factorial through repeated addition
num IsEqual(a, b):
    t = a;
    t -= b;
    r = 1;
    while t != 0:
        r = 0;
        t = 0;
    #
    return r;

num Mul(a, b):
    p = 0;
    i = b;
    while i != 0:
        p += a;
        i -= 1;
    #
    return p;

num Factorial(n):
    isZero = IsEqual(n, 0);
    while isZero != 0:
        return 1;
    #
    m = n;
    m -= 1;
    sub = Factorial(m);
    return Mul(n, sub);

n = 5;
f = Factorial(n);
`

func writeSource(t *testing.T, source string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "program.while")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}
	return path
}

func TestRunPrintsSnapshot(t *testing.T) {
	color.EnableColor(false)

	var out bytes.Buffer
	r := runner.Runner{
		SourceFile: writeSource(t, factorialSource),
		Out:        &out,
	}

	if err := r.Run(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got, want := out.String(), "n = 5\nf = 120\n"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRunYAML(t *testing.T) {
	cfg := config.Default()
	cfg.Format = "yaml"

	var out bytes.Buffer
	r := runner.Runner{
		SourceFile: writeSource(t, "x = 0;\nb = 5125;\n"),
		Config:     cfg,
		Out:        &out,
	}

	if err := r.Run(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got, want := out.String(), "x: 0\nb: 5125\n"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRunParseError(t *testing.T) {
	color.EnableColor(false)

	var out bytes.Buffer
	mem := store.NewMemory()
	r := runner.Runner{
		SourceFile: writeSource(t, "a = 1;\nwhile a != 0:\na -= 1;\n"),
		Out:        &out,
		Store:      mem,
	}

	err := r.Run()
	if !errors.Is(err, diag.ErrMissingEscapeMarker) {
		t.Fatalf("Expected missing escape marker, got %v", err)
	}

	var reported *runner.ReportedError
	if !errors.As(err, &reported) {
		t.Errorf("Expected the printed parse error to be marked as reported, got %T", err)
	}
	if !strings.Contains(out.String(), "=== Parse Error ===") {
		t.Errorf("Expected the parse error to be printed, got %q", out.String())
	}

	if strings.Contains(out.String(), "a = ") {
		t.Errorf("Snapshot printed despite the parse error: %q", out.String())
	}

	if run, _ := mem.GetRun(1); run != nil {
		t.Error("Unparsed program must not be stored")
	}
}

func TestRunStoresRuntimeErrors(t *testing.T) {
	color.EnableColor(false)

	var out bytes.Buffer
	mem := store.NewMemory()
	r := runner.Runner{
		SourceFile: writeSource(t, "x = Missing(2);\ny = 3;\n"),
		Out:        &out,
		Store:      mem,
	}

	err := r.Run()
	if !errors.Is(err, diag.ErrUndefinedMethod) {
		t.Fatalf("Expected undefined method, got %v", err)
	}
	var reported *runner.ReportedError
	if !errors.As(err, &reported) {
		t.Errorf("Expected the printed runtime errors to be marked as reported, got %T", err)
	}
	if !strings.Contains(out.String(), "=== Runtime Errors ===") {
		t.Errorf("Expected runtime errors to be printed, got %q", out.String())
	}

	run, err := mem.LastRun(r.SourceFile)
	if err != nil || run == nil {
		t.Fatalf("Expected a stored run, got %v", err)
	}

	want := []store.Binding{{Name: "x", Value: 0}, {Name: "y", Value: 3}}
	if diff := cmp.Diff(want, run.Bindings); diff != "" {
		t.Errorf("Bindings mismatch (-want +got):\n%s", diff)
	}
	if len(run.Diagnostics) != 1 || run.Diagnostics[0].Name != "Missing" {
		t.Errorf("Expected one diagnostic for Missing, got %+v", run.Diagnostics)
	}
}

func TestRunSQLite(t *testing.T) {
	cfg := config.Default()
	cfg.DB = filepath.Join(t.TempDir(), "runs.db")

	r := runner.Runner{
		SourceFile: writeSource(t, "x = 4;\n"),
		Config:     cfg,
		Out:        &bytes.Buffer{},
	}

	for i := 0; i < 2; i++ {
		if err := r.Run(); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	db, err := store.NewSQLite(cfg.DB)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	run, err := db.LastRun(r.SourceFile)
	if err != nil || run == nil {
		t.Fatalf("Expected a stored run, got %v", err)
	}
	if run.ID != 2 || len(run.Bindings) != 1 || run.Bindings[0].Value != 4 {
		t.Errorf("Unexpected run %+v", run)
	}
}

func TestRunMissingFile(t *testing.T) {
	r := runner.Runner{SourceFile: filepath.Join(t.TempDir(), "missing.while"), Out: &bytes.Buffer{}}

	err := r.Run()
	if err == nil {
		t.Fatal("Expected an error for a missing source file")
	}

	var reported *runner.ReportedError
	if errors.As(err, &reported) {
		t.Error("A read failure is not printed by the runner and must not be marked as reported")
	}
}

func TestRunStoresPrintedSnapshot(t *testing.T) {
	color.EnableColor(false)

	source := strings.Join([]string{
		"void Inc():",
		"g += 1;",
		"return;",
		"g = 0;",
		"r = Inc();",
	}, "\n")

	var out bytes.Buffer
	mem := store.NewMemory()
	r := runner.Runner{
		SourceFile: writeSource(t, source),
		Out:        &out,
		Store:      mem,
	}

	if err := r.Run(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got, want := out.String(), "g = 0\nr = 0\n"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	run, err := mem.LastRun(r.SourceFile)
	if err != nil || run == nil {
		t.Fatalf("Expected a stored run, got %v", err)
	}

	want := []store.Binding{{Name: "g", Value: 0}, {Name: "r", Value: 0}}
	if diff := cmp.Diff(want, run.Bindings); diff != "" {
		t.Errorf("Stored bindings differ from the printed ones (-want +got):\n%s", diff)
	}
}

func TestRunEagerBindings(t *testing.T) {
	color.EnableColor(false)

	cfg := config.Default()
	cfg.EagerBindings = true

	var out bytes.Buffer
	r := runner.Runner{
		SourceFile: writeSource(t, "a = 1;\nb = a;\na = 5;\n"),
		Config:     cfg,
		Out:        &out,
	}

	if err := r.Run(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got, want := out.String(), "a = 5\nb = 1\n"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
