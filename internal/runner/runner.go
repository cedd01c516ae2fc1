package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"whilelang/internal/config"
	"whilelang/pkg/ast"
	"whilelang/pkg/color"
	"whilelang/pkg/diag"
	"whilelang/pkg/interpreter"
	"whilelang/pkg/lexer"
	"whilelang/pkg/parser"
	"whilelang/pkg/store"
)

// ReportedError is a failure whose diagnostics were already written to Out
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

type Runner struct {
	SourceFile string         // Path to the source file
	Config     *config.Config // Run configuration
	Tree       bool           // Print the parsed program tree before running
	Out        io.Writer      // Destination of the snapshot, stdout when nil
	Store      store.Store    // Run persistence; opened from Config.DB when nil
}

// Run reads, parses and executes the source file, then prints the final
// depth 0 bindings. On failure the errors are printed instead of the bindings.
func (r *Runner) Run() error {
	if r.Config == nil {
		r.Config = config.Default()
	}
	if r.Out == nil {
		r.Out = os.Stdout
	}

	log.Debug("Processing file", "file", r.SourceFile)

	lines, err := lexer.ReadFile(r.SourceFile)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	lines = lexer.Normalize(lines)

	program, err := parser.Parse(lines, r.Config.ParserOptions()...)
	if err != nil {
		fmt.Fprintln(r.Out, color.BrightRedText("=== Parse Error ==="))
		fmt.Fprintln(r.Out, err)
		return &ReportedError{Err: fmt.Errorf("parsing failed: %w", err)}
	}

	if r.Tree || r.Config.Debug() {
		fmt.Fprintln(r.Out, color.GreenText("=== Program Tree ==="))
		if err := ast.Print(r.Out, program); err != nil {
			return err
		}
	}

	opts := append(r.Config.InterpreterOptions(), interpreter.WithWriter(r.Out))
	it := interpreter.NewInterpreter(program, opts...)
	runErr := it.Run()

	// reading a binding may call methods, so the snapshot is taken exactly once
	vars, snapErr := it.Snapshot()
	runErr = errors.Join(runErr, snapErr)

	if err := r.persist(vars, it.Errors()); err != nil {
		return fmt.Errorf("store run: %w", err)
	}

	if runErr != nil {
		errs := it.Errors()
		fmt.Fprintln(r.Out, color.BrightRedText("=== Runtime Errors ==="))
		for _, e := range errs {
			fmt.Fprintln(r.Out, e)
		}
		return &ReportedError{Err: fmt.Errorf("execution failed with %d errors: %w", len(errs), runErr)}
	}

	if r.Config.Format == "yaml" {
		return writeYAML(r.Out, vars)
	}

	return it.WriteSnapshot(vars)
}

// persist stores the run when a store is configured
func (r *Runner) persist(vars []interpreter.Variable, errs []error) error {
	s := r.Store
	if s == nil {
		if r.Config.DB == "" {
			return nil
		}

		db, err := store.NewSQLite(r.Config.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		s = db
	}

	run := &store.Run{
		Source:    r.SourceFile,
		Timestamp: time.Now(),
	}

	for _, v := range vars {
		run.Bindings = append(run.Bindings, store.Binding{Name: v.Name, Value: v.Value})
	}

	for _, err := range errs {
		var d *diag.Error
		if !errors.As(err, &d) {
			continue
		}
		run.Diagnostics = append(run.Diagnostics, store.Diagnostic{
			Kind:    d.Kind.String(),
			Line:    d.Line,
			Name:    d.Name,
			Message: d.Msg,
		})
	}

	id, err := s.SaveRun(run)
	if err != nil {
		return err
	}

	log.Debug("Run stored", "id", id, "bindings", len(run.Bindings))
	return nil
}

// writeYAML prints the bindings as a YAML mapping in first-assignment order
func writeYAML(w io.Writer, vars []interpreter.Variable) error {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, v := range vars {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: v.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(uint64(v.Value), 10)},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}

	return enc.Close()
}
