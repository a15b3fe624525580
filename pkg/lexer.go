package lilt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const (
	EOF rune = 0

	TokenError TokenType = iota
	TokenEOF
	TokenNumber
	TokenString
	TokenIdentifier

	TokenPrint
	TokenLet
	TokenIf
	TokenThen
	TokenElseif
	TokenElse
	TokenEnd
	TokenWhile

	TokenPlus
	TokenMinus
	TokenAsterisk
	TokenSlash
	TokenAssign
	TokenEquals
	TokenNotEquals
	TokenGreater
	TokenGreaterEquals
	TokenLess
	TokenLessEquals
	TokenSemicolon
)

// Keyword lookup is case-insensitive: PRINT and print are the same keyword.
var keywordTable = map[string]TokenType{
	"print":  TokenPrint,
	"let":    TokenLet,
	"if":     TokenIf,
	"then":   TokenThen,
	"elseif": TokenElseif,
	"else":   TokenElse,
	"end":    TokenEnd,
	"while":  TokenWhile,
}

var operatorTable = map[string]TokenType{
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenAsterisk,
	"/":  TokenSlash,
	"=":  TokenAssign,
	"==": TokenEquals,
	"!=": TokenNotEquals,
	">":  TokenGreater,
	">=": TokenGreaterEquals,
	"<":  TokenLess,
	"<=": TokenLessEquals,
	";":  TokenSemicolon,
}

// Location is a 1-based line/column position in the source text.
type Location struct {
	Line int
	Col  int
}

func (l *Location) String() string {
	if l == nil {
		return "?"
	}

	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

func (t Token) isValid() bool {
	return t.Typ != TokenError && t.Typ != TokenEOF
}

func (t Token) isComparison() bool {
	switch t.Typ {
	case TokenEquals, TokenNotEquals, TokenGreater, TokenGreaterEquals, TokenLess, TokenLessEquals:
		return true
	}

	return false
}

func (t Token) describe() string {
	switch t.Typ {
	case TokenEOF:
		return "end of input"
	case TokenError:
		return "invalid input"
	case TokenString:
		return fmt.Sprintf("%q", t.Value)
	}

	return "'" + t.Value + "'"
}

// Tokenizer is the lexer's contract with the parser. Do runs the token
// producer, usually in its own goroutine, and Get blocks for the next token.
// After a TokenError has been delivered, Err reports the structured failure.
type Tokenizer interface {
	Do()
	Get() Token
	Err() *LexError
	GetFilename() string
}

type Lexer struct {
	filename string
	reader   *bufio.Reader
	done     chan Token
	err      *LexError

	line  int
	col   int
	start Location
}

func NewLexer(filename string) (*Lexer, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	l := NewLexerFromReader(bytes.NewReader(src))
	l.filename = filename

	return l, nil
}

func NewLexerFromReader(reader io.Reader) *Lexer {
	return &Lexer{
		filename: "<input>",
		reader:   bufio.NewReader(reader),
		done:     make(chan Token),
		line:     1,
		col:      1,
	}
}

func NewLexerFromString(src string) *Lexer {
	return NewLexerFromReader(strings.NewReader(src))
}

func (l *Lexer) Do() {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	close(l.done)
}

func (l *Lexer) Get() Token {
	return <-l.done
}

func (l *Lexer) Chan() chan Token {
	return l.done
}

func (l *Lexer) Err() *LexError {
	return l.err
}

func (l *Lexer) GetFilename() string {
	return l.filename
}

// RunBlocking drains the lexer into a slice, dropping the terminating EOF
// token. Intended for tests and one-shot callers.
func (l *Lexer) RunBlocking() ([]Token, error) {
	go l.Do()

	var tokens []Token
	for t := range l.done {
		switch t.Typ {
		case TokenEOF:
			return tokens, nil
		case TokenError:
			return nil, l.err
		}

		tokens = append(tokens, t)
	}

	return tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == EOF:
			l.mark()
			return l.emit(TokenEOF, "")
		case unicode.IsSpace(r):
			l.next()
		case r == '#':
			return lineCommentState
		case '0' <= r && r <= '9':
			l.mark()
			return numberState
		case r == '"':
			l.mark()
			return stringState
		case unicode.IsLetter(r):
			l.mark()
			return identifierState
		default:
			l.mark()
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); '0' <= r && r <= '9'; r = l.peek() {
		num.WriteRune(l.next())
	}

	if l.peek() == '.' {
		num.WriteRune(l.next())

		if r := l.peek(); r < '0' || r > '9' {
			return l.failf(UnexpectedCharacter, "malformed number '%s'", num.String())
		}

		for r := l.peek(); '0' <= r && r <= '9'; r = l.peek() {
			num.WriteRune(l.next())
		}
	}

	return l.emit(TokenNumber, num.String())
}

func stringState(l *Lexer) stateFunc {
	l.next() // Skip the leading double-quote

	var str strings.Builder
	for r := l.next(); r != '"'; r = l.next() {
		if r == EOF {
			return l.failf(UnterminatedString, "unclosed string: %s", str.String())
		}

		str.WriteRune(r)
	}

	return l.emit(TokenString, str.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'; r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[strings.ToLower(id.String())]; ok {
		return l.emit(t, id.String())
	}

	return l.emit(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if r == '=' || r == '!' || r == '>' || r == '<' { // Some operators can be two runes
		if l.peek() == '=' {
			op := string(r) + string(l.next())
			return l.emit(operatorTable[op], op)
		}
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emit(tok, string(r))
	}

	return l.failf(UnexpectedCharacter, "invalid symbol '%c'", r)
}

func lineCommentState(l *Lexer) stateFunc {
	for r := l.peek(); r != '\n' && r != EOF; r = l.peek() {
		l.next()
	}

	return defaultState
}

// mark records the position of the upcoming rune as the start of a token.
func (l *Lexer) mark() {
	l.start = Location{Line: l.line, Col: l.col}
}

func (l *Lexer) emit(t TokenType, val string) stateFunc {
	loc := l.start
	l.done <- Token{
		Typ:   t,
		Value: val,
		Loc:   &loc,
	}

	if t == TokenEOF {
		return nil
	}

	return defaultState
}

func (l *Lexer) failf(kind LexErrorKind, format string, args ...interface{}) stateFunc {
	loc := l.start
	l.err = &LexError{
		Kind:   kind,
		Loc:    &loc,
		Detail: fmt.Sprintf(format, args...),
	}

	l.done <- Token{
		Typ:   TokenError,
		Value: l.err.Detail,
		Loc:   &loc,
	}

	return nil
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return EOF
	}

	_ = l.reader.UnreadRune()
	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return EOF
	}

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}
