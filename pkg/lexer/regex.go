package lexer

import (
	"regexp"
	"strings"

	"whilelang/pkg/diag"
)

type tokenRegex struct {
	Pattern *regexp.Regexp
	Raw     string
}

// Line recognizers, applied to the trimmed line text
var tokenRegexes = map[TokenType]tokenRegex{
	ASSIGN:   {regexp.MustCompile(`^[^\s=+\-!(),;#]+\s*=(?:[^=]|$)`), `^[^\s=+\-!(),;#]+\s*=(?:[^=]|$)`},
	METHOD:   {regexp.MustCompile(`^(?:void|num)\b`), `^(?:void|num)\b`},
	WHILE:    {regexp.MustCompile(`^while\b`), `^while\b`},
	RETURN:   {regexp.MustCompile(`^return\b`), `^return\b`},
	COMPOUND: {regexp.MustCompile(`^[^\s=+\-!(),;#]+\s*[+-]=`), `^[^\s=+\-!(),;#]+\s*[+-]=`},
	ESCAPE:   {regexp.MustCompile(`^#`), `^#`},
	CALL:     {regexp.MustCompile(`^[^\s=(),;#]+\s*\(`), `^[^\s=(),;#]+\s*\(`},
}

var (
	identifierRegex = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z_$0-9]*$`)
	literalRegex    = regexp.MustCompile(`^[0-9]+$`)

	assignRegex   = regexp.MustCompile(`^([^\s=]+)\s*=(.*)$`)
	methodRegex   = regexp.MustCompile(`^(void|num)\s+([^\s(]*)\s*\((.*)\)$`)
	whileRegex    = regexp.MustCompile(`^while\s+(\S+)\s*!=\s*0$`)
	compoundRegex = regexp.MustCompile(`^([^\s+\-]+)\s*([+-]=)(.*)$`)
)

// First match wins
var tokenPrecedenceOrder = []TokenType{
	ASSIGN, METHOD, WHILE, RETURN, COMPOUND, ESCAPE, CALL,
}

// Get the regex pattern for a token type
func (t TokenType) Regex() *regexp.Regexp {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Pattern
	}

	return nil
}

// Get the raw regex string for a token type
func (t TokenType) RawRegex() string {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Raw
	}

	return ""
}

// MatchToken returns the kind of statement the line text starts with
func MatchToken(s string) (TokenType, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return EOF, false
	}

	for _, tokenType := range tokenPrecedenceOrder {
		// calls never contain '='
		if tokenType == CALL && strings.Contains(s, "=") {
			continue
		}

		if regex := tokenType.Regex(); regex != nil && regex.MatchString(s) {
			return tokenType, true
		}
	}

	return ILLEGAL, false
}

// IsIdentifier reports whether s is a valid, non-reserved name
func IsIdentifier(s string) bool {
	return identifierRegex.MatchString(s) && !IsKeyword(s)
}

// IsLiteral reports whether s is an unsigned decimal literal
func IsLiteral(s string) bool {
	return literalRegex.MatchString(s)
}

// CheckBalance verifies that parentheses in s open and close in order
func CheckBalance(s string, line int) error {
	depth := 0
	for _, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return diag.New(diag.UnbalancedParentheses, line, "", "unexpected ')'")
			}
		}
	}

	if depth != 0 {
		return diag.New(diag.UnbalancedParentheses, line, "", "expected ')'")
	}

	return nil
}

// SplitArgs splits a parameter or argument list on top-level commas.
// An empty list yields no segments, an empty segment is an error.
func SplitArgs(s string, line int) ([]string, error) {
	if err := CheckBalance(s, line); err != nil {
		return nil, err
	}

	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var segments []string
	depth, start := 0, 0

	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				segments = append(segments, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	segments = append(segments, strings.TrimSpace(s[start:]))

	for _, segment := range segments {
		if segment == "" {
			return nil, diag.New(diag.MalformedStatement, line, "", "parameter can't be empty")
		}
	}

	return segments, nil
}

// topLevelFields splits s on whitespace outside parentheses.
// Whitespace directly before '(' is not a separator.
func topLevelFields(s string) []string {
	var fields []string
	var current strings.Builder
	depth := 0

	flush := func() {
		if current.Len() > 0 {
			fields = append(fields, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case (c == ' ' || c == '\t') && depth == 0:
			rest := strings.TrimLeft(s[i:], " \t")
			if !strings.HasPrefix(rest, "(") {
				flush()
			}
			continue
		}
		current.WriteByte(c)
	}
	flush()

	return fields
}
