package lexer

import (
	"fmt"
)

type TokenType int

// Token is one classified source line. Which fields are set depends on Type.
type Token struct {
	Type   TokenType // Kind of statement the line holds
	Line   CodeLine  // Source line the token was read from
	Name   string    // Assigned variable, method name or loop variable
	Op     string    // "+=" or "-=" for COMPOUND
	Value  string    // Right hand side, return value or call text, without terminator
	Params []string  // Parameter names of a METHOD header
	Kind   string    // "void" or "num" for METHOD
}

const (
	EOF TokenType = iota // End of file

	ASSIGN   // name = expr;
	METHOD   // type name(params):
	WHILE    // while name != 0:
	RETURN   // return [expr];
	COMPOUND // name += expr; / name -= expr;
	ESCAPE   // #
	CALL     // name(args);

	ILLEGAL // line matches no rule
)

const (
	KeywordVoid   = "void"
	KeywordNum    = "num"
	KeywordWhile  = "while"
	KeywordReturn = "return"

	AddAssign = "+="
	SubAssign = "-="
)

var Keywords = map[string]bool{
	KeywordVoid:   true,
	KeywordNum:    true,
	KeywordWhile:  true,
	KeywordReturn: true,
}

var tokenNames = map[TokenType]string{
	EOF:      "$",
	ASSIGN:   "assign",
	METHOD:   "method",
	WHILE:    "while",
	RETURN:   "return",
	COMPOUND: "compound",
	ESCAPE:   "escape",
	CALL:     "call",
	ILLEGAL:  "illegal",
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	if str, ok := tokenNames[t]; ok {
		return str
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// String returns a string representation of the Token
func (t Token) String() string {
	if t.Name == "" {
		return fmt.Sprintf("T_{%s, %q, %d}", t.Type, t.Value, t.Line.Number)
	}

	return fmt.Sprintf("T_{%s, %s, %q, %d}", t.Type, t.Name, t.Value, t.Line.Number)
}

// IsKeyword checks if the given identifier is reserved
func IsKeyword(identifier string) bool {
	return Keywords[identifier]
}
