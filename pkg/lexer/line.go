package lexer

import "fmt"

// CodeLine is one source line with its 1-based line number.
type CodeLine struct {
	Text   string
	Number int
}

// Returns a string representation of the CodeLine
func (c CodeLine) String() string {
	return fmt.Sprintf("%d:\t %q", c.Number, c.Text)
}

// Creates a new CodeLine instance
func NewCodeLine(text string, number int) CodeLine {
	return CodeLine{
		Text:   text,
		Number: number,
	}
}
