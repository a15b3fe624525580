package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	lilt "go.lilt.dev/pkg"
)

const Version = "0.1.0"

const usage = `usage: lilt [options] [file]

Runs the given script, or starts a REPL when no file is given.

options:
  -e CODE  run CODE instead of reading a file
  -s N     abort execution after N steps
  -t       print the syntax tree instead of running
  -V       print the version and exit
  -h       show this help
`

func main() {
	opts, optind, err := getopt.Getopts(os.Args, "e:s:tVh")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var (
		inline    string
		treeMode  bool
		stepLimit int
	)

	for _, opt := range opts {
		switch opt.Option {
		case 'e':
			inline = opt.Value
		case 's':
			stepLimit, err = strconv.Atoi(opt.Value)
			if err != nil || stepLimit < 1 {
				fmt.Fprintf(os.Stderr, "-s wants a positive integer, got %q\n", opt.Value)
				os.Exit(2)
			}
		case 't':
			treeMode = true
		case 'V':
			fmt.Printf("lilt v%s\n", Version)
			return
		case 'h':
			fmt.Print(usage)
			return
		}
	}

	args := os.Args[optind:]
	if len(args) > 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if inline == "" && len(args) == 0 {
		lilt.StartREPL(os.Stdout, Version)
		return
	}

	var tokenizer lilt.Tokenizer
	if inline != "" {
		tokenizer = lilt.NewLexerFromString(inline)
	} else {
		lexer, err := lilt.NewLexer(args[0])
		if err != nil {
			fail(err)
		}

		tokenizer = lexer
	}

	prog, err := lilt.NewParser(tokenizer).Run()
	if err != nil {
		fail(err)
	}

	if treeMode {
		fmt.Println(lilt.Dump(prog))
		return
	}

	interp := lilt.NewInterpreter(lilt.WithStepLimit(stepLimit))
	if err := interp.Eval(prog, lilt.NewEnvironment()); err != nil {
		fail(err)
	}
}

func fail(err error) {
	stage := "error"

	var lexErr *lilt.LexError
	var parseErr *lilt.ParseError
	var runtimeErr *lilt.RuntimeError

	switch {
	case errors.As(err, &lexErr):
		stage = "lex error"
	case errors.As(err, &parseErr):
		stage = "parse error"
	case errors.As(err, &runtimeErr):
		stage = "runtime error"
	}

	color.New(color.FgRed, color.Bold).Fprintf(color.Error, "%s: ", stage)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
