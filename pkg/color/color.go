package color

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	colorEnabled = true
	output       = termenv.NewOutput(os.Stdout, termenv.WithProfile(termenv.ANSI))
)

func init() {
	if os.Getenv("NO_COLOR") != "" || !isTerminal() {
		colorEnabled = false
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func EnableColor(enable bool) {
	colorEnabled = enable
}

// Profile returns the termenv profile matching the current color setting
func Profile() termenv.Profile {
	if !colorEnabled {
		return termenv.Ascii
	}
	return termenv.ANSI256
}

func Colorize(c termenv.Color, text string) string {
	if !colorEnabled {
		return text
	}
	return output.String(text).Foreground(c).String()
}

func RedText(text string) string {
	return Colorize(termenv.ANSIRed, text)
}

func BrightRedText(text string) string {
	return Colorize(termenv.ANSIBrightRed, text)
}

func GreenText(text string) string {
	return Colorize(termenv.ANSIGreen, text)
}

func YellowText(text string) string {
	return Colorize(termenv.ANSIYellow, text)
}

func BlueText(text string) string {
	return Colorize(termenv.ANSIBlue, text)
}

func Warning(message string) string {
	if !colorEnabled {
		return "Warning: " + message
	}
	return YellowText("Warning: ") + message
}
