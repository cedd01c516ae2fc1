package ast

import (
	"fmt"
	"strings"
)

type Operator string

// Compound update operators
const (
	OpAdd Operator = "+="
	OpSub Operator = "-="
)

// Expression is one of Literal, VariableRef or MethodCall.
type Expression interface {
	expressionNode()
	String() string
}

// Statement is one of Assign, CompoundUpdate, Call, While or Return.
type Statement interface {
	statementNode()
	Line() int
	String() string
}

// Pos records the normalized source line a statement was parsed from
type Pos struct {
	LineNumber int
}

func (p Pos) Line() int { return p.LineNumber }

type Literal struct {
	Value uint32
}

type VariableRef struct {
	Name string
}

type MethodCall struct {
	Name string
	Args []Expression
}

func (Literal) expressionNode()     {}
func (VariableRef) expressionNode() {}
func (MethodCall) expressionNode()  {}

func (l Literal) String() string     { return fmt.Sprintf("%d", l.Value) }
func (v VariableRef) String() string { return v.Name }

func (m MethodCall) String() string {
	args := make([]string, len(m.Args))
	for i, a := range m.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", m.Name, strings.Join(args, ", "))
}

// Assign binds Name at the current call depth
type Assign struct {
	Pos
	Name  string
	Value Expression
}

// CompoundUpdate rewrites an existing binding with += or -=
type CompoundUpdate struct {
	Pos
	Name  string
	Op    Operator
	Value Expression
}

// Call is a method call used as a statement; its result is discarded
type Call struct {
	Pos
	Call MethodCall
}

// While repeats Body as long as Condition is bound to a non-zero value
type While struct {
	Pos
	Condition string
	Body      []Statement
}

// Return leaves the enclosing method. Value is nil for a bare return.
type Return struct {
	Pos
	Value Expression
}

func (*Assign) statementNode()         {}
func (*CompoundUpdate) statementNode() {}
func (*Call) statementNode()           {}
func (*While) statementNode()          {}
func (*Return) statementNode()         {}

func (a *Assign) String() string { return fmt.Sprintf("%s = %s;", a.Name, a.Value) }

func (c *CompoundUpdate) String() string {
	return fmt.Sprintf("%s %s %s;", c.Name, c.Op, c.Value)
}

func (c *Call) String() string  { return c.Call.String() + ";" }
func (w *While) String() string { return fmt.Sprintf("while %s != 0:", w.Condition) }

func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value)
}
