package interpreter

import (
	"fmt"

	"github.com/charmbracelet/log"

	"whilelang/pkg/ast"
	"whilelang/pkg/diag"
)

// execute runs a statement list. returned reports that a return statement was
// reached; it propagates through enclosing loops up to the call boundary.
// A non-nil error means execution unwinds.
func (i *Interpreter) execute(stmts []ast.Statement) (value uint32, returned bool, err error) {
	for _, stmt := range stmts {
		if err := i.step(stmt.Line()); err != nil {
			return 0, false, err
		}

		switch s := stmt.(type) {
		case *ast.Assign:
			err = i.assign(s)

		case *ast.CompoundUpdate:
			err = i.compoundUpdate(s)

		case *ast.Call:
			_, err = i.call(s.Call, s.Line())

		case *ast.While:
			value, returned, err = i.loop(s)
			if returned {
				return value, true, err
			}

		case *ast.Return:
			if s.Value == nil {
				return 0, true, nil
			}
			value, err = i.evaluate(s.Value, s.Line())
			return value, true, err

		default:
			err = fmt.Errorf("unknown statement %T", stmt)
		}

		if err != nil {
			return 0, false, err
		}
	}

	return 0, false, nil
}

// step counts one executed statement or loop iteration
func (i *Interpreter) step(line int) error {
	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return i.fail(diag.Newf(diag.StepLimit, line, "more than %d steps executed", i.maxSteps))
	}

	i.steps++
	return nil
}

func (i *Interpreter) assign(s *ast.Assign) error {
	if !i.eager {
		i.env.Assign(s.Name, s.Value)
		return nil
	}

	v, err := i.evaluate(s.Value, s.Line())
	if err != nil {
		return err
	}

	i.env.Assign(s.Name, literal(v))
	return nil
}

func (i *Interpreter) compoundUpdate(s *ast.CompoundUpdate) error {
	frame, ok := i.env.Resolve(s.Name, i.scope)
	if !ok {
		return i.fail(diag.New(diag.UndefinedVariable, s.Line(), s.Name, "can't update an undefined variable"))
	}

	expr, _ := frame.get(s.Name)
	current, err := i.resolve(s.Name, expr, s.Line())
	if err != nil {
		return err
	}

	rhs, err := i.evaluate(s.Value, s.Line())
	if err != nil {
		return err
	}

	frame.set(s.Name, literal(apply(s.Op, current, rhs)))
	return nil
}

// loop re-reads the condition variable before every iteration
func (i *Interpreter) loop(s *ast.While) (uint32, bool, error) {
	for {
		cond, err := i.variable(s.Condition, s.Line())
		if err != nil {
			return 0, false, err
		}

		if cond == 0 {
			return 0, false, nil
		}

		log.Debug("while", "var", s.Condition, "value", cond, "line", s.Line())

		if err := i.step(s.Line()); err != nil {
			return 0, false, err
		}

		v, returned, err := i.execute(s.Body)
		if err != nil || returned {
			return v, returned, err
		}
	}
}

// evaluate computes the value of an expression at the current depth
func (i *Interpreter) evaluate(expr ast.Expression, line int) (uint32, error) {
	switch e := expr.(type) {
	case ast.Literal:
		return e.Value, nil
	case ast.VariableRef:
		return i.variable(e.Name, line)
	case ast.MethodCall:
		return i.call(e, line)
	default:
		return 0, fmt.Errorf("unknown expression %T", expr)
	}
}

// variable reads name at the current depth
func (i *Interpreter) variable(name string, line int) (uint32, error) {
	expr, ok := i.env.Lookup(name)
	if !ok {
		return 0, i.fail(diag.New(diag.UndefinedVariable, line, name, "variable is not defined in this scope"))
	}

	return i.resolve(name, expr, line)
}

// resolve evaluates a bound expression at the current depth.
// A binding that is reached again while it is being evaluated refers to itself.
func (i *Interpreter) resolve(name string, expr ast.Expression, line int) (uint32, error) {
	if l, ok := expr.(ast.Literal); ok {
		return l.Value, nil
	}

	key := fmt.Sprintf("%d:%s", i.env.Depth(), name)
	if i.resolving[key] {
		return 0, i.fail(diag.New(diag.RecursionLimit, line, name, "binding refers to itself"))
	}

	i.resolving[key] = true
	defer delete(i.resolving, key)

	return i.evaluate(expr, line)
}

// call evaluates the arguments in the caller's frame, then invokes the method
func (i *Interpreter) call(mc ast.MethodCall, line int) (uint32, error) {
	args := make([]uint32, len(mc.Args))
	for n, arg := range mc.Args {
		v, err := i.evaluate(arg, line)
		if err != nil {
			return 0, err
		}
		args[n] = v
	}

	return i.invoke(mc.Name, args, line)
}

// invoke runs a method body in a new frame. The frame is popped on every path.
func (i *Interpreter) invoke(name string, args []uint32, line int) (uint32, error) {
	def, ok := i.program.Methods.Lookup(name)
	if !ok {
		return 0, i.fail(diag.New(diag.UndefinedMethod, line, name, "method is not defined"))
	}

	if len(args) != len(def.Params) {
		return 0, i.fail(diag.New(diag.ArgumentCountMismatch, line, name,
			fmt.Sprintf("expected %d arguments, got %d", len(def.Params), len(args))))
	}

	if i.maxDepth > 0 && i.env.Depth() >= i.maxDepth {
		return 0, i.fail(diag.New(diag.RecursionLimit, line, name,
			fmt.Sprintf("call depth exceeds %d", i.maxDepth)))
	}

	bindings := make([]Binding, len(args))
	for n, param := range def.Params {
		bindings[n] = Binding{Name: param, Value: literal(args[n])}
	}

	i.env.PushFrame(def, bindings...)
	defer i.env.PopFrame()

	log.Debug("call", "method", name, "args", args, "depth", i.env.Depth())

	v, _, err := i.execute(def.Body)
	if err != nil {
		return 0, err
	}

	if def.Returns == ast.Void {
		return 0, nil
	}

	return v, nil
}

// fail records a runtime diagnostic. The returned error is nil unless execution must unwind.
func (i *Interpreter) fail(err *diag.Error) error {
	log.Debug("runtime error", "kind", err.Kind, "name", err.Name, "line", err.Line)
	i.errs = append(i.errs, err)

	if i.strict || err.Kind == diag.StepLimit {
		return err
	}

	return nil
}
