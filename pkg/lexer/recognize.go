package lexer

import (
	"strings"

	"github.com/charmbracelet/log"

	"whilelang/pkg/diag"
)

// Classify recognizes the statement held by a single line.
// The returned error is always a *diag.Error.
func Classify(line CodeLine) (Token, error) {
	text := strings.TrimSpace(line.Text)
	tok := Token{Line: line}

	tokenType, matched := MatchToken(text)
	if !matched {
		tok.Type = ILLEGAL
		return tok, diag.New(diag.MalformedStatement, line.Number, "", "unrecognized statement "+quote(text))
	}

	tok.Type = tokenType

	var err error
	switch tokenType {
	case ASSIGN:
		err = recognizeAssign(text, &tok)
	case METHOD:
		err = recognizeMethod(text, &tok)
	case WHILE:
		err = recognizeWhile(text, &tok)
	case RETURN:
		err = recognizeReturn(text, &tok)
	case COMPOUND:
		err = recognizeCompound(text, &tok)
	case ESCAPE:
		err = recognizeEscape(text, &tok)
	case CALL:
		err = recognizeCall(text, &tok)
	}

	if err != nil {
		log.Debug("line rejected", "n", line.Number, "matched", tokenType, "pattern", tokenType.RawRegex())
		tok.Type = ILLEGAL
	}

	return tok, err
}

func recognizeAssign(text string, tok *Token) error {
	n := tok.Line.Number

	m := assignRegex.FindStringSubmatch(text)
	if m == nil {
		return diag.New(diag.MalformedStatement, n, "", "expected `name = expression;`")
	}

	name := strings.TrimSpace(m[1])
	if !IsIdentifier(name) {
		return diag.New(diag.MalformedStatement, n, name, "invalid variable name")
	}

	value, err := terminated(m[2], ";", n)
	if err != nil {
		return err
	}
	if value == "" {
		return diag.New(diag.MalformedStatement, n, name, "missing expression")
	}

	tok.Name = name
	tok.Value = value
	return nil
}

func recognizeMethod(text string, tok *Token) error {
	n := tok.Line.Number

	header, err := terminated(text, ":", n)
	if err != nil {
		return err
	}

	if err := CheckBalance(header, n); err != nil {
		return err
	}

	m := methodRegex.FindStringSubmatch(header)
	if m == nil {
		return diag.New(diag.MalformedStatement, n, "", "expected `type name(parameters):`")
	}

	if !IsIdentifier(m[2]) {
		return diag.New(diag.MalformedStatement, n, m[2], "invalid method name")
	}

	params, err := SplitArgs(m[3], n)
	if err != nil {
		return err
	}

	for _, p := range params {
		if !IsIdentifier(p) {
			return diag.New(diag.MalformedStatement, n, p, "expected a name for the parameter")
		}
	}

	tok.Kind = m[1]
	tok.Name = m[2]
	tok.Params = params
	return nil
}

func recognizeWhile(text string, tok *Token) error {
	n := tok.Line.Number

	header, err := terminated(text, ":", n)
	if err != nil {
		return err
	}

	m := whileRegex.FindStringSubmatch(header)
	if m == nil {
		return diag.New(diag.MalformedStatement, n, "", "expected `while name != 0:`")
	}

	if !IsIdentifier(m[1]) {
		return diag.New(diag.MalformedStatement, n, m[1], "invalid loop variable")
	}

	tok.Name = m[1]
	return nil
}

func recognizeReturn(text string, tok *Token) error {
	n := tok.Line.Number

	body, err := terminated(text, ";", n)
	if err != nil {
		return err
	}

	value := strings.TrimSpace(strings.TrimPrefix(body, KeywordReturn))
	if value == "" {
		return nil
	}

	if err := CheckBalance(value, n); err != nil {
		return err
	}

	args, err := SplitArgs(value, n)
	if err != nil {
		return err
	}

	if len(args) > 1 || len(topLevelFields(value)) > 1 {
		return diag.New(diag.ReturnArityMismatch, n, "", "too many return values")
	}

	tok.Value = value
	return nil
}

func recognizeCompound(text string, tok *Token) error {
	n := tok.Line.Number

	m := compoundRegex.FindStringSubmatch(text)
	if m == nil {
		return diag.New(diag.MalformedStatement, n, "", "expected `name += expression;`")
	}

	name := strings.TrimSpace(m[1])
	if !IsIdentifier(name) {
		return diag.New(diag.MalformedStatement, n, name, "invalid variable name")
	}

	value, err := terminated(m[3], ";", n)
	if err != nil {
		return err
	}
	if value == "" {
		return diag.New(diag.MalformedStatement, n, name, "missing expression")
	}

	tok.Name = name
	tok.Op = m[2]
	tok.Value = value
	return nil
}

func recognizeEscape(text string, tok *Token) error {
	if text != "#" {
		return diag.New(diag.MalformedStatement, tok.Line.Number, "", "unexpected tokens after \"#\"")
	}

	return nil
}

func recognizeCall(text string, tok *Token) error {
	value, err := terminated(text, ";", tok.Line.Number)
	if err != nil {
		return err
	}

	tok.Value = value
	return nil
}

// terminated strips the mandatory terminator from s and trims the result
func terminated(s, terminator string, line int) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, terminator) {
		return "", diag.New(diag.MissingTerminator, line, "", "expected "+quote(terminator))
	}

	return strings.TrimSpace(strings.TrimSuffix(s, terminator)), nil
}

func quote(s string) string {
	return "\"" + s + "\""
}
