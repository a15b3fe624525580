package lilt

import "fmt"

// Every failure belongs to one of three terminal families: LexError during
// tokenization, ParseError during parsing, RuntimeError during evaluation.
// Each stage aborts on its first error; there is no in-language recovery.

type LexErrorKind string

const (
	UnterminatedString  LexErrorKind = "unterminated string"
	UnexpectedCharacter LexErrorKind = "unexpected character"
)

type LexError struct {
	Kind   LexErrorKind
	Loc    *Location
	Detail string
}

func (e *LexError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Loc, e.Kind)
	}

	return fmt.Sprintf("%s: %s: %s", e.Loc, e.Kind, e.Detail)
}

type ParseErrorKind string

const (
	UnexpectedToken   ParseErrorKind = "unexpected token"
	ExpectedButFound  ParseErrorKind = "expected construct not found"
	UnterminatedBlock ParseErrorKind = "unterminated block"
)

// ParseError names the construct the parser wanted and the token it saw.
type ParseError struct {
	Kind     ParseErrorKind
	Expected string
	Tok      Token
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ExpectedButFound:
		return fmt.Sprintf("%s: expected %s, found %s", e.Tok.Loc, e.Expected, e.Tok.describe())
	case UnterminatedBlock:
		return fmt.Sprintf("%s: unterminated block: missing %s", e.Tok.Loc, e.Expected)
	}

	return fmt.Sprintf("%s: unexpected token %s", e.Tok.Loc, e.Tok.describe())
}

type RuntimeErrorKind string

const (
	UnboundIdentifier RuntimeErrorKind = "unbound identifier"
	TypeMismatch      RuntimeErrorKind = "type mismatch"
	DivisionByZero    RuntimeErrorKind = "division by zero"
	ExecutionAborted  RuntimeErrorKind = "execution aborted"
)

type RuntimeError struct {
	Kind   RuntimeErrorKind
	Detail string
}

func (e *RuntimeError) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}
