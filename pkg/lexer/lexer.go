package lexer

type Lexer struct {
	lines    []CodeLine // normalized source lines
	position int        // index of the next line to classify
}

// Create a new lexer instance over normalized lines
func NewLexer(lines []CodeLine) *Lexer {
	return &Lexer{
		lines:    lines,
		position: 0,
	}
}

// Get the token of the next line. An EOF token is returned once all lines are consumed.
func (l *Lexer) NextToken() (Token, error) {
	if l.position >= len(l.lines) {
		tok := Token{Type: EOF}
		if len(l.lines) > 0 {
			tok.Line = l.lines[len(l.lines)-1]
		}
		return tok, nil
	}

	tok, err := Classify(l.lines[l.position])
	l.position++

	return tok, err
}

// View next token without advancing the position
func (l *Lexer) Peek() (Token, error) {
	cpos := l.position
	tok, err := l.NextToken()
	l.position = cpos

	return tok, err
}

// Check if there are more lines to read
func (l *Lexer) HasMore() bool {
	return l.position < len(l.lines)
}

// Position returns the index of the next line to be read
func (l *Lexer) Position() int {
	return l.position
}

// Seek moves the lexer so that the next token is read from line index i
func (l *Lexer) Seek(i int) {
	l.position = max(0, min(i, len(l.lines)))
}
