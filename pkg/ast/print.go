package ast

import (
	"fmt"
	"io"
	"strings"
)

// Print writes the program as an indented tree: methods first, then the top-level scope
func Print(w io.Writer, p *Program) error {
	var b strings.Builder

	b.WriteString("Program:\n")
	b.WriteString("├── Methods:\n")

	methods := p.Methods.Methods()
	for i, m := range methods {
		last := i == len(methods)-1
		params := strings.Join(m.Params, ", ")
		writeNode(&b, "│  ", fmt.Sprintf("%s %s(%s)", m.Returns, m.Name, params), last)
		writeStatements(&b, "│  "+childPrefix(last), m.Body)
	}

	b.WriteString("└── Scope:\n")
	writeStatements(&b, "   ", p.Statements)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeStatements(b *strings.Builder, prefix string, stmts []Statement) {
	for i, s := range stmts {
		last := i == len(stmts)-1
		writeNode(b, prefix, s.String(), last)

		if w, ok := s.(*While); ok {
			writeStatements(b, prefix+childPrefix(last), w.Body)
		}
	}
}

func writeNode(b *strings.Builder, prefix, label string, last bool) {
	branch := "├── "
	if last {
		branch = "└── "
	}
	b.WriteString(prefix + branch + label + "\n")
}

func childPrefix(last bool) string {
	if last {
		return "   "
	}
	return "│  "
}
