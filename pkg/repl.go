package lilt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	replPrompt             = ">> "
	replContinuationPrompt = ".. "
)

var completionWords = []string{
	"print", "let", "if", "then", "elseif", "else", "end", "while",
}

// StartREPL runs an interactive session with line editing, history, and
// keyword completion. Variable bindings persist across inputs; an input that
// leaves a block or string open continues on the next line.
func StartREPL(out io.Writer, version string) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completions)

	historyFile := filepath.Join(os.TempDir(), ".lilt_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	env := NewEnvironment()
	interp := NewInterpreter(WithOutput(out))

	fmt.Fprintf(out, "lilt v%s\n", version)
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit, ':help' for commands")

	var buffer strings.Builder
	for {
		current := replPrompt
		if buffer.Len() > 0 {
			current = replContinuationPrompt
		}

		input, err := line.Prompt(current)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(out, "^C")
				buffer.Reset()
				continue
			}

			if err == io.EOF {
				fmt.Fprintln(out)
				return
			}

			fmt.Fprintf(out, "error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if buffer.Len() == 0 {
			if trimmed == "" {
				continue
			}

			if trimmed == "exit" || trimmed == "quit" {
				return
			}

			if strings.HasPrefix(trimmed, ":") {
				replCommand(trimmed, env, out)
				continue
			}
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(input)

		src := buffer.String()
		if needsMoreInput(src) {
			continue
		}

		buffer.Reset()
		line.AppendHistory(src)

		prog, err := NewParser(NewLexerFromString(src)).Run()
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		if err := interp.Eval(prog, env); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}

func replCommand(cmd string, env *Environment, out io.Writer) {
	switch cmd {
	case ":help", ":h":
		fmt.Fprintln(out, "REPL commands:")
		fmt.Fprintln(out, "  :help, :h   Show this help")
		fmt.Fprintln(out, "  :env        Show bound variables")
		fmt.Fprintln(out, "  :clear      Drop all bindings")
		fmt.Fprintln(out, "  exit, quit  Leave the REPL")
	case ":env":
		names := env.Names()
		if len(names) == 0 {
			fmt.Fprintln(out, "(no variables)")
			return
		}

		for _, name := range names {
			v, _ := env.Get(name)
			fmt.Fprintf(out, "  %s = %s\n", name, v)
		}
	case ":clear":
		env.Clear()
		fmt.Fprintln(out, "environment cleared")
	default:
		fmt.Fprintf(out, "unknown command %s (type :help)\n", cmd)
	}
}

// needsMoreInput reports whether src ends inside an open if/while block or an
// unterminated string, meaning the REPL should keep reading lines.
func needsMoreInput(src string) bool {
	toks, err := NewLexerFromString(src).RunBlocking()
	if err != nil {
		var lexErr *LexError
		if errors.As(err, &lexErr) && lexErr.Kind == UnterminatedString {
			return true
		}

		// Other lex errors surface when the input is evaluated
		return false
	}

	depth := 0
	for _, tok := range toks {
		switch tok.Typ {
		case TokenIf, TokenWhile:
			depth++
		case TokenEnd:
			depth--
		}
	}

	return depth > 0
}

func completions(line string) []string {
	if strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
		return nil
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	last := fields[len(fields)-1]

	var matches []string
	for _, word := range completionWords {
		if strings.HasPrefix(word, last) {
			matches = append(matches, word)
		}
	}

	return matches
}
