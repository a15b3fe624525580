package test

import (
	"math/rand"
	"strings"
)

var sampleTokens = []string{
	"print", "let", "if", "then", "elseif", "else", "end", "while",
	"x", "counter", "total_sum", "WHILE",
	"\"hello\"", "\"two words\"",
	"123", "321", "3.25",
	"+", "-", "*", "/", "=", "==", "!=", ">", ">=", "<", "<=", ";",
	"# a comment\n",
}

// RandomTokens builds a source string of n random lexemes separated by pipes,
// plus the separator tokens themselves. Pipes are not part of the language, so
// feeding the result to a lexer exercises the error path at a known point; use
// RandomValidTokens for input that must lex cleanly.
func RandomTokens(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString(sampleTokens[rand.Intn(len(sampleTokens))])
		sb.WriteString("|")
	}

	return sb.String()
}

// RandomValidTokens builds a source string of n random lexemes separated by
// spaces. The result is guaranteed to lex without errors.
func RandomValidTokens(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString(sampleTokens[rand.Intn(len(sampleTokens))])
		sb.WriteString(" ")
	}

	return sb.String()
}
