package interpreter

import (
	"github.com/charmbracelet/log"

	"whilelang/pkg/ast"
	"whilelang/pkg/stack"
)

// Scope selects which binding a compound update rewrites
type Scope int

const (
	// ScopeInnermost rewrites the deepest binding of the name across all depths
	ScopeInnermost Scope = iota
	// ScopeCurrent rewrites the binding at the current depth only, like assignment
	ScopeCurrent
)

func (s Scope) String() string {
	if s == ScopeCurrent {
		return "current"
	}
	return "innermost"
}

// ParseScope maps "innermost" or "current" to a Scope
func ParseScope(s string) (Scope, bool) {
	switch s {
	case "innermost", "":
		return ScopeInnermost, true
	case "current":
		return ScopeCurrent, true
	default:
		return ScopeInnermost, false
	}
}

// Binding is a name bound to an expression, used to install parameters
type Binding struct {
	Name  string
	Value ast.Expression
}

// Environment is the variable store: one frame per active call depth.
// Depth 0 is the top-level scope and is never popped.
type Environment struct {
	frames *stack.Stack[*Frame]
}

// NewEnvironment creates an environment holding only the depth 0 frame
func NewEnvironment() *Environment {
	return &Environment{frames: stack.NewStack(newFrame(0, nil))}
}

// Depth returns the current call depth
func (e *Environment) Depth() int {
	return e.frames.Size() - 1
}

// Current returns the frame of the current depth
func (e *Environment) Current() *Frame {
	f, _ := e.frames.Peek()
	return f
}

// Global returns the depth 0 frame
func (e *Environment) Global() *Frame {
	return e.frames.At(0)
}

// Assign writes name at the current depth
func (e *Environment) Assign(name string, expr ast.Expression) {
	e.Current().set(name, expr)
}

// Lookup finds name at exactly the current depth. Bindings of other depths are invisible.
func (e *Environment) Lookup(name string) (ast.Expression, bool) {
	return e.Current().get(name)
}

// Resolve returns the frame whose binding of name a compound update rewrites
func (e *Environment) Resolve(name string, scope Scope) (*Frame, bool) {
	if scope == ScopeCurrent {
		f := e.Current()
		_, ok := f.get(name)
		return f, ok
	}

	for d := e.Depth(); d >= 0; d-- {
		f := e.frames.At(d)
		if _, ok := f.get(name); ok {
			return f, true
		}
	}

	return nil, false
}

// PushFrame enters a new depth and binds the given parameters there
func (e *Environment) PushFrame(method *ast.MethodDefinition, bindings ...Binding) *Frame {
	f := newFrame(e.Depth()+1, method)
	for _, b := range bindings {
		f.set(b.Name, b.Value)
	}

	e.frames.Push(f)
	log.Debug("push frame", "depth", f.Depth, "bindings", len(bindings))

	return f
}

// PopFrame drops every binding of the current depth and returns to the caller's depth.
// The depth 0 frame is never removed.
func (e *Environment) PopFrame() bool {
	if e.Depth() == 0 {
		return false
	}

	f, _ := e.frames.Pop()
	log.Debug("pop frame", "depth", f.Depth, "bindings", f.Len())

	return true
}
