package parser

import (
	"strings"

	"github.com/charmbracelet/log"

	"whilelang/pkg/ast"
	"whilelang/pkg/lexer"
	"whilelang/pkg/stack"
)

type scopeKind int

const (
	topLevel scopeKind = iota
	methodBody
	whileBody
)

// scope is one entry of the trail of currently open bodies
type scope struct {
	kind scopeKind
	line int
	name string
}

type Parser struct {
	lexer   *lexer.Lexer        // line classifier and cursor
	program *ast.Program        // program being built
	scopes  *stack.Stack[scope] // currently open bodies, top-level at the bottom

	rejectRedefinition bool
}

type Option func(*Parser)

// WithRejectRedefinition turns a second definition of a method name into an error
func WithRejectRedefinition() Option {
	return func(p *Parser) { p.rejectRedefinition = true }
}

// NewParser creates a new parser over normalized lines
func NewParser(lines []lexer.CodeLine, opts ...Option) *Parser {
	p := &Parser{
		lexer:   lexer.NewLexer(lines),
		program: ast.NewProgram(),
		scopes:  stack.NewStack(scope{kind: topLevel, name: "program"}),
	}

	for _, o := range opts {
		o(p)
	}

	return p
}

// Parse parses normalized lines into a Program
func Parse(lines []lexer.CodeLine, opts ...Option) (*ast.Program, error) {
	return NewParser(lines, opts...).Parse()
}

// Parse builds the program from the first line on. On error the program
// parsed so far is returned alongside it and must not be executed.
func (p *Parser) Parse() (*ast.Program, error) {
	_, _, err := p.ParseScope(0)
	return p.program, err
}

// ParseScope parses top-level statements starting at line index start.
// It returns the parsed statements and the index of the last line consumed.
func (p *Parser) ParseScope(start int) ([]ast.Statement, int, error) {
	p.lexer.Seek(start)

	stmts, err := p.parseScope(topLevel, nil)
	p.program.Statements = append(p.program.Statements, stmts...)

	return stmts, p.lexer.Position() - 1, err
}

// parseScope reads statements until the end of the current body:
// the first return of a method body, the matching '#' of a while body,
// or the end of input at top level.
func (p *Parser) parseScope(kind scopeKind, method *ast.MethodDefinition) ([]ast.Statement, error) {
	stmts := make([]ast.Statement, 0)

	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return stmts, err
		}

		if tok.Type != lexer.EOF {
			log.Debug("line", "n", tok.Line.Number, "kind", tok.Type, "scope", p.trail())
		}

		switch tok.Type {
		case lexer.EOF:
			return p.endOfInput(kind, stmts)

		case lexer.ASSIGN:
			value, err := ParseExpression(tok.Value, tok.Line.Number)
			if err != nil {
				return stmts, err
			}
			stmts = append(stmts, &ast.Assign{Pos: pos(tok), Name: tok.Name, Value: value})

		case lexer.COMPOUND:
			value, err := ParseExpression(tok.Value, tok.Line.Number)
			if err != nil {
				return stmts, err
			}
			stmts = append(stmts, &ast.CompoundUpdate{Pos: pos(tok), Name: tok.Name, Op: ast.Operator(tok.Op), Value: value})

		case lexer.CALL:
			call, err := parseCall(tok.Value, tok.Line.Number)
			if err != nil {
				return stmts, err
			}
			stmts = append(stmts, &ast.Call{Pos: pos(tok), Call: call})

		case lexer.METHOD:
			if kind != topLevel {
				return stmts, p.nestedMethodError(tok)
			}
			if err := p.parseMethod(tok); err != nil {
				return stmts, err
			}

		case lexer.WHILE:
			w, err := p.parseWhile(tok, method)
			if err != nil {
				// the unterminated loop is dropped and the error ends the whole parse
				return stmts, err
			}
			stmts = append(stmts, w)

		case lexer.RETURN:
			ret, err := p.parseReturn(tok, method)
			if err != nil {
				return stmts, err
			}
			stmts = append(stmts, ret)

			// anything after the first return is not part of the method body
			if kind == methodBody {
				return stmts, nil
			}

		case lexer.ESCAPE:
			if kind != whileBody {
				return stmts, p.unexpectedEscapeError(tok)
			}
			return stmts, nil
		}
	}
}

// parseMethod parses a method body and registers the method
func (p *Parser) parseMethod(header lexer.Token) error {
	returns, _ := ast.ParseReturnKind(header.Kind)

	def := &ast.MethodDefinition{
		Pos:     pos(header),
		Name:    header.Name,
		Params:  header.Params,
		Returns: returns,
	}

	if _, exists := p.program.Methods.Lookup(def.Name); exists && p.rejectRedefinition {
		return p.duplicateMethodError(header)
	}

	p.scopes.Push(scope{kind: methodBody, line: header.Line.Number, name: def.Name})
	body, err := p.parseScope(methodBody, def)
	p.scopes.Pop()

	if err != nil {
		return err
	}

	def.Body = body
	if replaced := p.program.Methods.Define(def); replaced {
		log.Warn("Method redefined", "method", def.Name, "line", header.Line.Number)
	}

	return nil
}

// parseWhile parses a while body up to its escape marker
func (p *Parser) parseWhile(header lexer.Token, method *ast.MethodDefinition) (*ast.While, error) {
	p.scopes.Push(scope{kind: whileBody, line: header.Line.Number, name: "while " + header.Name})
	body, err := p.parseScope(whileBody, method)
	p.scopes.Pop()

	if err != nil {
		return nil, err
	}

	return &ast.While{Pos: pos(header), Condition: header.Name, Body: body}, nil
}

// parseReturn validates a return against the enclosing method header
func (p *Parser) parseReturn(tok lexer.Token, method *ast.MethodDefinition) (*ast.Return, error) {
	if method == nil {
		return nil, p.returnOutsideMethodError(tok)
	}

	ret := &ast.Return{Pos: pos(tok)}
	if tok.Value == "" {
		if method.Returns == ast.Num {
			return nil, p.missingReturnValueError(tok, method)
		}
		return ret, nil
	}

	value, err := ParseExpression(tok.Value, tok.Line.Number)
	if err != nil {
		return nil, err
	}
	ret.Value = value

	return ret, nil
}

// endOfInput closes the current body when the lines run out
func (p *Parser) endOfInput(kind scopeKind, stmts []ast.Statement) ([]ast.Statement, error) {
	switch kind {
	case methodBody:
		return stmts, p.missingReturnError()
	case whileBody:
		return stmts, p.missingEscapeError()
	default:
		return stmts, nil
	}
}

// trail renders the open scopes, e.g. "program > Add > while i"
func (p *Parser) trail() string {
	names := make([]string, 0, p.scopes.Size())
	for _, s := range p.scopes.Array() {
		names = append(names, s.name)
	}
	return strings.Join(names, " > ")
}

func pos(tok lexer.Token) ast.Pos {
	return ast.Pos{LineNumber: tok.Line.Number}
}
