package lilt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeedsMoreInput(t *testing.T) {
	cases := []struct {
		data   string
		expect bool
	}{
		{"print 1;", false},
		{"let x = 1;", false},
		{"if 1 < 2 then", true},
		{"if 1 < 2 then\nprint 1;", true},
		{"if 1 < 2 then\nprint 1;\nend", false},
		{"while x > 0 then", true},
		{"while 1 == 1 then if 2 > 1 then", true},
		{"while 1 == 1 then if 2 > 1 then end", true},
		{"\"open string", true},
		{"end", false},        // a stray end is a parse error, not a continuation
		{"let @ = 1;", false}, // other lex errors surface on evaluation
		{"", false},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, needsMoreInput(c.data), c.data)
	}
}

func TestCompletions(t *testing.T) {
	cases := []struct {
		line   string
		expect []string
	}{
		{"pr", []string{"print"}},
		{"let x = w", []string{"while"}},
		{"e", []string{"elseif", "else", "end"}},
		{"print ", nil}, // trailing space means a fresh word, no candidates
		{"", nil},
		{"zz", nil},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, completions(c.line), c.line)
	}
}

func TestREPLCommands(t *testing.T) {
	env := NewEnvironment()
	env.Set("x", NumberOf(1))

	var out bytes.Buffer
	replCommand(":env", env, &out)
	assert.Contains(t, out.String(), "x = 1")

	out.Reset()
	replCommand(":clear", env, &out)
	assert.Empty(t, env.Names())
	assert.Contains(t, out.String(), "cleared")

	out.Reset()
	replCommand(":env", env, &out)
	assert.Contains(t, out.String(), "no variables")

	out.Reset()
	replCommand(":bogus", env, &out)
	assert.Contains(t, out.String(), "unknown command")
}
