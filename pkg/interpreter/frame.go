package interpreter

import "whilelang/pkg/ast"

// Frame holds the bindings of one call depth.
type Frame struct {
	Depth  int                   // call depth, 0 for the top-level scope
	Method *ast.MethodDefinition // method executing in this frame, nil at depth 0

	bindings map[string]ast.Expression
	order    []string // names in first-assignment order
}

func newFrame(depth int, method *ast.MethodDefinition) *Frame {
	return &Frame{
		Depth:    depth,
		Method:   method,
		bindings: make(map[string]ast.Expression),
		order:    make([]string, 0),
	}
}

// set replaces an existing binding in place or creates a new one
func (f *Frame) set(name string, expr ast.Expression) {
	if _, ok := f.bindings[name]; !ok {
		f.order = append(f.order, name)
	}
	f.bindings[name] = expr
}

func (f *Frame) get(name string) (ast.Expression, bool) {
	expr, ok := f.bindings[name]
	return expr, ok
}

// Names returns the bound names in first-assignment order
func (f *Frame) Names() []string {
	return append([]string(nil), f.order...)
}

// Len returns the number of bindings held by the frame
func (f *Frame) Len() int {
	return len(f.bindings)
}
