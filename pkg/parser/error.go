package parser

import (
	"fmt"

	"whilelang/pkg/ast"
	"whilelang/pkg/diag"
	"whilelang/pkg/lexer"
)

// nestedMethodError is raised for a method header inside any body
func (p *Parser) nestedMethodError(tok lexer.Token) error {
	return diag.New(diag.NestedMethodDefinition, tok.Line.Number, tok.Name,
		fmt.Sprintf("can't define a method inside %q", p.trail()))
}

// duplicateMethodError is raised for a redefinition when redefinitions are rejected
func (p *Parser) duplicateMethodError(tok lexer.Token) error {
	return diag.New(diag.DuplicateMethod, tok.Line.Number, tok.Name, "method is already defined")
}

// missingReturnError is raised when a method body reaches the end of input.
// The innermost open method is the one reported.
func (p *Parser) missingReturnError() error {
	for i := p.scopes.Size() - 1; i >= 0; i-- {
		if s := p.scopes.At(i); s.kind == methodBody {
			return diag.New(diag.MethodMissingReturn, s.line, s.name, "method must end with a return")
		}
	}

	return diag.New(diag.MethodMissingReturn, 0, "", "method must end with a return")
}

// missingEscapeError is raised when a while body reaches the end of input
func (p *Parser) missingEscapeError() error {
	top, _ := p.scopes.Peek()
	return diag.New(diag.MissingEscapeMarker, top.line, "", fmt.Sprintf("%q is never closed by \"#\"", top.name))
}

// missingReturnValueError is raised for a bare return inside a num method
func (p *Parser) missingReturnValueError(tok lexer.Token, method *ast.MethodDefinition) error {
	return diag.New(diag.ReturnArityMismatch, tok.Line.Number, method.Name, "num method must return a value")
}

// returnOutsideMethodError is raised for a return that no method encloses
func (p *Parser) returnOutsideMethodError(tok lexer.Token) error {
	return diag.New(diag.MalformedStatement, tok.Line.Number, "", "return outside of a method")
}

// unexpectedEscapeError is raised for a '#' that closes no while body
func (p *Parser) unexpectedEscapeError(tok lexer.Token) error {
	return diag.New(diag.MalformedStatement, tok.Line.Number, "", "escape marker \"#\" outside of a while body")
}
