package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"whilelang/pkg/ast"
	"whilelang/pkg/diag"
)

// Interpreter executes a parsed Program against its own variable environment
type Interpreter struct {
	program *ast.Program
	env     *Environment

	out io.Writer // destination of WriteSnapshot

	strict   bool  // unwind on the first runtime error
	eager    bool  // assignments store the value instead of the expression
	scope    Scope // binding rewritten by compound updates
	maxDepth int   // maximum call depth (0 = unlimited)
	maxSteps int   // maximum statements executed (0 = unlimited)

	steps     int
	errs      []error         // runtime diagnostics in the order they were raised
	resolving map[string]bool // bindings currently being evaluated
}

type Option func(*Interpreter)

// WithWriter sets the output writer for WriteSnapshot
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithStrict makes the first runtime error abort the run
func WithStrict() Option {
	return func(i *Interpreter) { i.strict = true }
}

// WithEagerBindings evaluates assigned expressions once and stores the resulting literal.
// By default the expression itself is bound and evaluated on every read.
func WithEagerBindings() Option {
	return func(i *Interpreter) { i.eager = true }
}

// WithCompoundScope selects which binding += and -= rewrite
func WithCompoundScope(s Scope) Option {
	return func(i *Interpreter) { i.scope = s }
}

// WithMaxDepth limits the call depth, deeper calls fail with a recursion limit error
func WithMaxDepth(n int) Option {
	return func(i *Interpreter) { i.maxDepth = n }
}

// WithMaxSteps sets a maximum number of executed statements before the run is aborted
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// NewInterpreter creates a new Interpreter instance
func NewInterpreter(program *ast.Program, opts ...Option) *Interpreter {
	it := &Interpreter{
		program:   program,
		env:       NewEnvironment(),
		scope:     ScopeInnermost,
		resolving: make(map[string]bool),
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}

	return it
}

// Reset clears runtime state (bindings, diagnostics, counters)
func (i *Interpreter) Reset() {
	i.env = NewEnvironment()
	i.errs = nil
	i.steps = 0
	i.resolving = make(map[string]bool)
}

// Program returns the program being executed
func (i *Interpreter) Program() *ast.Program {
	return i.program
}

// Environment returns the live variable environment
func (i *Interpreter) Environment() *Environment {
	return i.env
}

// Depth returns the current call depth
func (i *Interpreter) Depth() int {
	return i.env.Depth()
}

// Steps returns the number of statements executed since the last reset
func (i *Interpreter) Steps() int {
	return i.steps
}

// Errors returns the runtime diagnostics recorded so far
func (i *Interpreter) Errors() []error {
	return append([]error(nil), i.errs...)
}

// Run executes the top-level statements.
// The returned error joins every runtime diagnostic raised during the run.
func (i *Interpreter) Run() error {
	if i.program == nil {
		return ErrNoProgram
	}

	// the unwinding error is always recorded already
	_, _, _ = i.execute(i.program.Statements)

	return errors.Join(i.errs...)
}

// Call invokes a method by name from the current depth
func (i *Interpreter) Call(name string, args ...uint32) (uint32, error) {
	if i.program == nil {
		return 0, ErrNoProgram
	}

	mark := len(i.errs)
	v, err := i.invoke(name, args, 0)
	if err != nil {
		return 0, err
	}

	return v, errors.Join(i.errs[mark:]...)
}

// Lookup evaluates the binding of name at the current depth.
// It does not add to Errors.
func (i *Interpreter) Lookup(name string) (uint32, error) {
	expr, ok := i.env.Lookup(name)
	if !ok {
		return 0, diag.New(diag.UndefinedVariable, 0, name, "variable is not defined in this scope")
	}

	mark := len(i.errs)
	defer func() { i.errs = i.errs[:mark] }()

	v, err := i.resolve(name, expr, 0)
	if err != nil {
		return 0, err
	}

	return v, errors.Join(i.errs[mark:]...)
}

// Snapshot evaluates every depth 0 binding once, in first-assignment order.
// Evaluating a binding may call methods, so errors raised here are recorded
// like any other runtime error and returned joined.
func (i *Interpreter) Snapshot() ([]Variable, error) {
	global := i.env.Global()
	vars := make([]Variable, 0, global.Len())
	mark := len(i.errs)

	for _, name := range global.Names() {
		expr, _ := global.get(name)

		v, err := i.resolve(name, expr, 0)
		if err != nil {
			v = 0
		}

		vars = append(vars, Variable{Name: name, Value: v})
	}

	return vars, errors.Join(i.errs[mark:]...)
}

// WriteSnapshot writes one `name = value` line per variable
func (i *Interpreter) WriteSnapshot(vars []Variable) error {
	for _, v := range vars {
		if _, err := fmt.Fprintln(i.out, v); err != nil {
			return err
		}
	}

	return nil
}

// Exec runs a program with a fresh interpreter and returns its final depth 0 bindings
func Exec(program *ast.Program, opts ...Option) ([]Variable, error) {
	it := NewInterpreter(program, opts...)
	runErr := it.Run()
	vars, err := it.Snapshot()
	return vars, errors.Join(runErr, err)
}

var ErrNoProgram = errors.New("interpreter has no program")
