package lexer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadFile reads a source file into raw, 1-based numbered lines
func ReadFile(path string) ([]CodeLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	return ReadLines(f)
}

// ReadLines splits r into raw lines numbered from 1
func ReadLines(r io.Reader) ([]CodeLine, error) {
	var lines []CodeLine

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		lines = append(lines, NewCodeLine(strings.TrimRight(scanner.Text(), "\r"), n))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	return lines, nil
}

// Normalize drops comment and blank lines and renumbers the rest densely from 1
func Normalize(lines []CodeLine) []CodeLine {
	normalized := make([]CodeLine, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line.Text)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}

		normalized = append(normalized, NewCodeLine(line.Text, len(normalized)+1))
	}

	return normalized
}

// Lines numbers the given texts from 1 without normalizing them
func Lines(texts ...string) []CodeLine {
	lines := make([]CodeLine, len(texts))
	for i, text := range texts {
		lines[i] = NewCodeLine(text, i+1)
	}

	return lines
}
