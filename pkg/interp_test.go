package lilt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpreter(t *testing.T) {
	cases := []struct {
		data   string
		expect string
	}{
		{
			"print 2 * 3 + 8;",
			"14\n",
		},
		{
			"print 10 - 3 - 2;",
			"5\n",
		},
		{
			"print 10 / 4;",
			"2.5\n",
		},
		{
			"print -5 + 8;",
			"3\n",
		},
		{
			"print 3.25 * 4;",
			"13\n",
		},
		{
			"PRINT 3;",
			"3\n",
		},
		{
			"let x = 1; x = x + 2; print x;",
			"3\n",
		},
		{
			"let i = 10;\nwhile i > 0 then\nprint i;\ni = i - 1;\nend",
			"10\n9\n8\n7\n6\n5\n4\n3\n2\n1\n",
		},
		{
			"let x = 2;\nif x == 1 then\nprint \"a\";\nelseif x == 2 then\nprint \"b\";\nelse\nprint \"c\";\nend",
			"b\n",
		},
		{
			"let x = 9;\nif x == 1 then\nprint \"a\";\nelseif x == 2 then\nprint \"b\";\nelse\nprint \"c\";\nend",
			"c\n",
		},
		{
			"if 1 < 2 < 3 then print \"yes\"; end",
			"yes\n",
		},
		{
			"if 3 < 2 < 1 then print \"no\"; end",
			"",
		},
		{
			// The chain stops at the first false comparison, so the string
			// operand is never compared
			"if 1 > 2 < \"s\" then print \"no\"; end",
			"",
		},
		{
			"let a = \"foo\"; let b = \"bar\"; print a + b;",
			"foobar\n",
		},
		{
			"let a = \"x\"; let b = \"x\"; if a == b then print 1; end",
			"1\n",
		},
		{
			"let a = \"x\"; let b = \"y\"; if a != b then print 1; end",
			"1\n",
		},
		{
			"while 1 > 2 then print \"never\"; end",
			"",
		},
		{
			"# just a comment\nprint 1; # trailing\n",
			"1\n",
		},
		{
			"print \"two words\";",
			"two words\n",
		},
	}

	for _, c := range cases {
		var out bytes.Buffer
		i := NewInterpreter(WithOutput(&out))

		_, err := i.RunString(c.data)
		require.NoError(t, err, c.data)
		assert.Equal(t, c.expect, out.String(), c.data)
	}
}

func TestInterpreterRuntimeErrors(t *testing.T) {
	cases := []struct {
		data   string
		kind   RuntimeErrorKind
		expect string // output produced before the failure
	}{
		{
			"print 1 / 0;",
			DivisionByZero,
			"",
		},
		{
			"let x = 1; let y = x - 1; print x / y;",
			DivisionByZero,
			"",
		},
		{
			"print x;",
			UnboundIdentifier,
			"",
		},
		{
			"x = 1;",
			UnboundIdentifier,
			"",
		},
		{
			"print 1;\nprint y;",
			UnboundIdentifier,
			"1\n",
		},
		{
			"let a = \"x\"; if a > a then print 1; end",
			TypeMismatch,
			"",
		},
		{
			"let a = \"x\"; if a == 1 then print 1; end",
			TypeMismatch,
			"",
		},
		{
			"let a = \"x\"; print a - a;",
			TypeMismatch,
			"",
		},
		{
			"let a = \"x\"; print a + 1;",
			TypeMismatch,
			"",
		},
		{
			"let a = \"x\"; print -a;",
			TypeMismatch,
			"",
		},
	}

	for _, c := range cases {
		var out bytes.Buffer
		i := NewInterpreter(WithOutput(&out))

		_, err := i.RunString(c.data)
		require.Error(t, err, c.data)

		var runtimeErr *RuntimeError
		require.ErrorAs(t, err, &runtimeErr, c.data)
		assert.Equal(t, c.kind, runtimeErr.Kind, c.data)
		assert.Equal(t, c.expect, out.String(), c.data)
	}
}

func TestInterpreterStepLimit(t *testing.T) {
	var out bytes.Buffer
	i := NewInterpreter(WithOutput(&out), WithStepLimit(100))

	_, err := i.RunString("while 1 == 1 then end")
	require.Error(t, err)

	var runtimeErr *RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	assert.Equal(t, ExecutionAborted, runtimeErr.Kind)
}

func TestInterpreterStepLimitNotReached(t *testing.T) {
	var out bytes.Buffer
	i := NewInterpreter(WithOutput(&out), WithStepLimit(1000))

	_, err := i.RunString("let i = 3; while i > 0 then i = i - 1; end print \"done\";")
	require.NoError(t, err)
	assert.Equal(t, "done\n", out.String())
}

func TestInterpreterEnvResult(t *testing.T) {
	var out bytes.Buffer
	i := NewInterpreter(WithOutput(&out))

	env, err := i.RunString("let x = 2 + 3; let s = \"hi\";")
	require.NoError(t, err)

	x, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, NumberOf(5), x)

	s, ok := env.Get("s")
	require.True(t, ok)
	assert.Equal(t, StringOf("hi"), s)

	assert.Equal(t, []string{"s", "x"}, env.Names())
}

func TestInterpreterSharedEnv(t *testing.T) {
	var out bytes.Buffer
	i := NewInterpreter(WithOutput(&out))
	env := NewEnvironment()

	first, err := NewParser(NewLexerFromString("let x = 1;")).Run()
	require.NoError(t, err)
	require.NoError(t, i.Eval(first, env))

	second, err := NewParser(NewLexerFromString("print x + 1;")).Run()
	require.NoError(t, err)
	require.NoError(t, i.Eval(second, env))

	assert.Equal(t, "2\n", out.String())
}

func TestInterpreterShortCircuitSkipsEvaluation(t *testing.T) {
	// The unbound identifier sits past a false comparison, so the condition
	// fails without an error
	var out bytes.Buffer
	i := NewInterpreter(WithOutput(&out))

	_, err := i.RunString("if 2 < 1 < missing then print \"no\"; end print \"after\";")
	require.NoError(t, err)
	assert.Equal(t, "after\n", out.String())
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v      Value
		expect string
	}{
		{NumberOf(14), "14"},
		{NumberOf(2.5), "2.5"},
		{NumberOf(-0.25), "-0.25"},
		{NumberOf(0), "0"},
		{StringOf("plain"), "plain"},
		{StringOf(""), ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, c.v.String())
	}
}
