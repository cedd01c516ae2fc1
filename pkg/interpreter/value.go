package interpreter

import (
	"fmt"

	"whilelang/pkg/ast"
)

// Variable is an evaluated depth 0 binding
type Variable struct {
	Name  string
	Value uint32
}

// String renders the variable the way the run snapshot prints it
func (v Variable) String() string {
	return fmt.Sprintf("%s = %d", v.Name, v.Value)
}

// apply computes a compound update. Arithmetic wraps around at 2^32.
func apply(op ast.Operator, current, rhs uint32) uint32 {
	switch op {
	case ast.OpSub:
		return current - rhs
	default:
		return current + rhs
	}
}

func literal(v uint32) ast.Expression {
	return ast.Literal{Value: v}
}
