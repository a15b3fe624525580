package lilt

import (
	"fmt"
	"io"
	"os"
)

// Interpreter drives the full pipeline: lex, parse, then walk the tree
// against an Environment. Printed lines go to the configured writer as they
// are produced, so output before a failing statement is preserved.
type Interpreter struct {
	out      io.Writer
	maxSteps int
}

type InterpreterOption func(*Interpreter)

func WithOutput(w io.Writer) InterpreterOption {
	return func(i *Interpreter) {
		i.out = w
	}
}

// WithStepLimit imposes an external execution budget: every executed
// statement and every while iteration costs one step, and exceeding the
// limit aborts the run with RuntimeError(ExecutionAborted). Zero means
// unlimited; a while-loop whose condition never turns false then runs
// forever, which is language semantics, not a fault.
func WithStepLimit(n int) InterpreterOption {
	return func(i *Interpreter) {
		i.maxSteps = n
	}
}

func NewInterpreter(opts ...InterpreterOption) *Interpreter {
	i := &Interpreter{out: os.Stdout}
	for _, opt := range opts {
		opt(i)
	}

	return i
}

func (i *Interpreter) RunFile(filename string) (*Environment, error) {
	lexer, err := NewLexer(filename)
	if err != nil {
		return nil, err
	}

	return i.run(NewParser(lexer))
}

func (i *Interpreter) RunString(src string) (*Environment, error) {
	return i.run(NewParser(NewLexerFromString(src)))
}

func (i *Interpreter) run(p *Parser) (*Environment, error) {
	prog, err := p.Run()
	if err != nil {
		return nil, err
	}

	env := NewEnvironment()
	return env, i.Eval(prog, env)
}

// Eval executes an already-parsed program against env. The environment is
// mutated in place, which is what lets a REPL keep bindings across inputs.
func (i *Interpreter) Eval(prog *Program, env *Environment) error {
	r := &run{
		out:      i.out,
		env:      env,
		maxSteps: i.maxSteps,
	}

	return r.block(prog.Statements)
}

// run is the state of a single evaluation pass.
type run struct {
	out      io.Writer
	env      *Environment
	maxSteps int
	steps    int
}

func (r *run) step() error {
	r.steps++
	if r.maxSteps > 0 && r.steps > r.maxSteps {
		return &RuntimeError{
			Kind:   ExecutionAborted,
			Detail: fmt.Sprintf("step limit of %d reached", r.maxSteps),
		}
	}

	return nil
}

func (r *run) block(stmts []Stmt) error {
	for _, s := range stmts {
		if err := r.stmt(s); err != nil {
			return err
		}
	}

	return nil
}

func (r *run) stmt(s Stmt) error {
	if err := r.step(); err != nil {
		return err
	}

	switch s := s.(type) {
	case *PrintStmt:
		v, err := r.expr(s.Value)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(r.out, v.String())
		return err
	case *LetStmt:
		v, err := r.expr(s.Value)
		if err != nil {
			return err
		}

		r.env.Set(s.Name, v)
		return nil
	case *AssignStmt:
		// The value is evaluated before the binding check
		v, err := r.expr(s.Value)
		if err != nil {
			return err
		}

		if _, ok := r.env.Get(s.Name); !ok {
			return &RuntimeError{Kind: UnboundIdentifier, Detail: s.Name}
		}

		r.env.Set(s.Name, v)
		return nil
	case *IfStmt:
		return r.ifChain(s)
	case *WhileStmt:
		return r.while(s)
	default:
		return &RuntimeError{Kind: TypeMismatch, Detail: fmt.Sprintf("unsupported statement %T", s)}
	}
}

// ifChain walks the chain until a condition holds or the plain else (nil
// condition) is reached. Only the taken branch's body executes.
func (r *run) ifChain(s *IfStmt) error {
	for node := s; node != nil; node = node.Next {
		if node.Cond == nil {
			return r.block(node.Body)
		}

		ok, err := r.condition(node.Cond)
		if err != nil {
			return err
		}

		if ok {
			return r.block(node.Body)
		}
	}

	return nil
}

func (r *run) while(s *WhileStmt) error {
	for {
		ok, err := r.condition(s.Cond)
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		if err := r.block(s.Body); err != nil {
			return err
		}

		// An iteration costs a step even when the body is empty
		if err := r.step(); err != nil {
			return err
		}
	}
}

// condition evaluates a comparison chain as a left-to-right conjunction over
// adjacent operands: 1 < x < 10 holds iff 1 < x and x < 10. Evaluation stops
// at the first false comparison; operands past it are never evaluated.
func (r *run) condition(c *Condition) (bool, error) {
	left, err := r.expr(c.Left)
	if err != nil {
		return false, err
	}

	for _, cmp := range c.Chain {
		right, err := r.expr(cmp.Right)
		if err != nil {
			return false, err
		}

		ok, err := compare(left, cmp.Op, right)
		if err != nil {
			return false, err
		}

		if !ok {
			return false, nil
		}

		left = right
	}

	return true, nil
}

func compare(left Value, op CompareOp, right Value) (bool, error) {
	if left.Kind != right.Kind {
		return false, &RuntimeError{
			Kind:   TypeMismatch,
			Detail: fmt.Sprintf("cannot compare %s and %s", left.kindName(), right.kindName()),
		}
	}

	if left.Kind == StringValue {
		// Strings have equality only; ordering is undefined for them
		switch op {
		case CompareEquals:
			return left.Str == right.Str, nil
		case CompareNotEquals:
			return left.Str != right.Str, nil
		default:
			return false, &RuntimeError{
				Kind:   TypeMismatch,
				Detail: fmt.Sprintf("operator %s is not defined for strings", op),
			}
		}
	}

	switch op {
	case CompareEquals:
		return left.Num == right.Num, nil
	case CompareNotEquals:
		return left.Num != right.Num, nil
	case CompareGreater:
		return left.Num > right.Num, nil
	case CompareGreaterEquals:
		return left.Num >= right.Num, nil
	case CompareLess:
		return left.Num < right.Num, nil
	case CompareLessEquals:
		return left.Num <= right.Num, nil
	}

	return false, &RuntimeError{Kind: TypeMismatch, Detail: fmt.Sprintf("unknown comparator %s", op)}
}

func (r *run) expr(e Expr) (Value, error) {
	switch e := e.(type) {
	case *LiteralExpr:
		return literalValue(e)
	case *Identifier:
		v, ok := r.env.Get(e.Name)
		if !ok {
			return Value{}, &RuntimeError{Kind: UnboundIdentifier, Detail: e.Name}
		}

		return v, nil
	case *BinaryExpr:
		return r.binary(e)
	case *UnaryExpr:
		return r.unary(e)
	default:
		return Value{}, &RuntimeError{Kind: TypeMismatch, Detail: fmt.Sprintf("unsupported expression %T", e)}
	}
}

func literalValue(e *LiteralExpr) (Value, error) {
	if e.Typ == LiteralString {
		return StringOf(e.Value), nil
	}

	f, err := parseNumber(e.Value)
	if err != nil {
		return Value{}, err
	}

	return NumberOf(f), nil
}

func (r *run) binary(e *BinaryExpr) (Value, error) {
	left, err := r.expr(e.Op1)
	if err != nil {
		return Value{}, err
	}

	right, err := r.expr(e.Op2)
	if err != nil {
		return Value{}, err
	}

	if left.Kind == StringValue && right.Kind == StringValue {
		if e.Operation == BinaryAddition {
			return StringOf(left.Str + right.Str), nil
		}

		return Value{}, &RuntimeError{
			Kind:   TypeMismatch,
			Detail: fmt.Sprintf("operator %s is not defined for strings", e.Operation),
		}
	}

	if left.Kind != right.Kind {
		return Value{}, &RuntimeError{
			Kind:   TypeMismatch,
			Detail: fmt.Sprintf("cannot apply %s to %s and %s", e.Operation, left.kindName(), right.kindName()),
		}
	}

	switch e.Operation {
	case BinaryAddition:
		return NumberOf(left.Num + right.Num), nil
	case BinarySubtraction:
		return NumberOf(left.Num - right.Num), nil
	case BinaryMultiplication:
		return NumberOf(left.Num * right.Num), nil
	case BinaryDivision:
		if right.Num == 0 {
			return Value{}, &RuntimeError{Kind: DivisionByZero}
		}

		return NumberOf(left.Num / right.Num), nil
	}

	return Value{}, &RuntimeError{Kind: TypeMismatch, Detail: fmt.Sprintf("unknown operator %s", e.Operation)}
}

func (r *run) unary(e *UnaryExpr) (Value, error) {
	v, err := r.expr(e.Operand)
	if err != nil {
		return Value{}, err
	}

	if v.Kind != NumberValue {
		return Value{}, &RuntimeError{
			Kind:   TypeMismatch,
			Detail: fmt.Sprintf("unary %s is not defined for strings", e.Operation),
		}
	}

	if e.Operation == UnaryNegative {
		return NumberOf(-v.Num), nil
	}

	return v, nil
}
