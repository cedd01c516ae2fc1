package parser

import (
	"strconv"
	"strings"

	"whilelang/pkg/ast"
	"whilelang/pkg/diag"
	"whilelang/pkg/lexer"
)

// ParseExpression parses a literal, a variable reference or a method call
func ParseExpression(text string, line int) (ast.Expression, error) {
	text = strings.TrimSpace(text)

	switch {
	case text == "":
		return nil, diag.New(diag.MalformedStatement, line, "", "missing expression")

	case lexer.IsLiteral(text):
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return nil, diag.New(diag.MalformedStatement, line, text, "literal out of range")
		}
		return ast.Literal{Value: uint32(v)}, nil

	case lexer.IsIdentifier(text):
		return ast.VariableRef{Name: text}, nil
	}

	return parseCall(text, line)
}

// parseCall parses `name(arg, ...)` where every argument is an expression
func parseCall(text string, line int) (ast.MethodCall, error) {
	text = strings.TrimSpace(text)

	if err := lexer.CheckBalance(text, line); err != nil {
		return ast.MethodCall{}, err
	}

	open := strings.IndexByte(text, '(')
	if open < 0 || !strings.HasSuffix(text, ")") {
		return ast.MethodCall{}, diag.New(diag.MalformedStatement, line, "", "invalid expression \""+text+"\"")
	}

	name := strings.TrimSpace(text[:open])
	if !lexer.IsIdentifier(name) {
		return ast.MethodCall{}, diag.New(diag.MalformedStatement, line, name, "invalid method name")
	}

	// the closing parenthesis must belong to the opening one, e.g. not f(a)(b)
	inner := text[open+1 : len(text)-1]
	if lexer.CheckBalance(inner, line) != nil {
		return ast.MethodCall{}, diag.New(diag.MalformedStatement, line, "", "invalid expression \""+text+"\"")
	}

	segments, err := lexer.SplitArgs(inner, line)
	if err != nil {
		return ast.MethodCall{}, err
	}

	call := ast.MethodCall{Name: name, Args: make([]ast.Expression, 0, len(segments))}
	for _, segment := range segments {
		arg, err := ParseExpression(segment, line)
		if err != nil {
			return ast.MethodCall{}, err
		}
		call.Args = append(call.Args, arg)
	}

	return call, nil
}
