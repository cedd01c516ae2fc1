package diag_test

import (
	"errors"
	"fmt"
	"testing"

	"whilelang/pkg/color"
	"whilelang/pkg/diag"
)

func TestErrorString(t *testing.T) {
	color.EnableColor(false)

	tests := []struct {
		err      *diag.Error
		expected string
	}{
		{diag.New(diag.UndefinedVariable, 4, "z", "variable is not defined in this scope"),
			"Undefined variable `z`: variable is not defined in this scope at Line: 4"},
		{diag.Newf(diag.StepLimit, 0, "more than %d steps executed", 10),
			"Step limit exceeded: more than 10 steps executed"},
		{&diag.Error{Kind: diag.Kind(99)}, "UNKNOWN(99)"},
	}

	for _, test := range tests {
		if got := test.err.Error(); got != test.expected {
			t.Errorf("Expected %q, got %q", test.expected, got)
		}
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("parsing failed: %w", diag.New(diag.MissingEscapeMarker, 7, "", "never closed"))

	if !errors.Is(err, diag.ErrMissingEscapeMarker) {
		t.Error("Expected sentinel to match")
	}
	if !errors.Is(err, &diag.Error{Kind: diag.MissingEscapeMarker, Line: 7}) {
		t.Error("Expected matching line to match")
	}
	if errors.Is(err, &diag.Error{Kind: diag.MissingEscapeMarker, Line: 8}) {
		t.Error("Expected other line not to match")
	}
	if errors.Is(err, diag.ErrMalformedStatement) {
		t.Error("Expected other kind not to match")
	}

	if k := diag.KindOf(err); k != diag.MissingEscapeMarker {
		t.Errorf("KindOf = %s", k)
	}
	if k := diag.KindOf(errors.New("plain")); k != diag.Unknown {
		t.Errorf("KindOf plain error = %s", k)
	}
}

func TestIsRuntime(t *testing.T) {
	for _, k := range []diag.Kind{diag.MalformedStatement, diag.MethodMissingReturn, diag.DuplicateMethod} {
		if k.IsRuntime() {
			t.Errorf("%s is a parse error", k)
		}
	}
	for _, k := range []diag.Kind{diag.UndefinedVariable, diag.UndefinedMethod, diag.StepLimit} {
		if !k.IsRuntime() {
			t.Errorf("%s is a runtime error", k)
		}
	}
}
