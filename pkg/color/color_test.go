package color_test

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"whilelang/pkg/color"
)

func TestDisabledColor(t *testing.T) {
	color.EnableColor(false)
	defer color.EnableColor(false)

	if got := color.RedText("error"); got != "error" {
		t.Errorf("Expected plain text, got %q", got)
	}
	if got := color.Warning("careful"); got != "Warning: careful" {
		t.Errorf("Expected plain warning, got %q", got)
	}
	if color.Profile() != termenv.Ascii {
		t.Error("Expected ASCII profile without color")
	}
}

func TestEnabledColor(t *testing.T) {
	color.EnableColor(true)
	defer color.EnableColor(false)

	got := color.GreenText("ok")
	if !strings.Contains(got, "ok") || !strings.HasPrefix(got, "\x1b[") {
		t.Errorf("Expected escape sequence around text, got %q", got)
	}
	if color.Profile() != termenv.ANSI256 {
		t.Error("Expected ANSI256 profile with color")
	}
}
