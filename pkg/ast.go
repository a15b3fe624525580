package lilt

// Program is the root of a parsed source file: an ordered sequence of
// top-level statements. The tree is immutable once the parser returns it.
type Program struct {
	Filename   string
	Statements []Stmt
}

type Stmt interface{}
type Expr interface{}

type PrintStmt struct {
	Value Expr
}

type LetStmt struct {
	Name  string
	Value Expr
}

type AssignStmt struct {
	Name  string
	Value Expr
}

// IfStmt is one link of an if-chain. The head carries the leading condition;
// each Next link is an elseif, except a final link with a nil Cond, which is
// the plain else branch.
type IfStmt struct {
	Cond *Condition
	Body []Stmt
	Next *IfStmt
}

type WhileStmt struct {
	Cond *Condition
	Body []Stmt
}

type CompareOp string

const (
	CompareEquals        CompareOp = "=="
	CompareNotEquals     CompareOp = "!="
	CompareGreater       CompareOp = ">"
	CompareGreaterEquals CompareOp = ">="
	CompareLess          CompareOp = "<"
	CompareLessEquals    CompareOp = "<="
)

type Comparison struct {
	Op    CompareOp
	Right Expr
}

// Condition is a chain of one or more comparisons over expressions,
// e.g. 1 < x < 10. Chain always has at least one entry.
type Condition struct {
	Left  Expr
	Chain []Comparison
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
)

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

type UnaryOp string

const (
	UnaryNegative UnaryOp = "-"
	UnaryPositive UnaryOp = "+"
)

type UnaryExpr struct {
	Operation UnaryOp
	Operand   Expr
}

type Identifier struct {
	Name string
}

type LiteralType int

const (
	LiteralNumber LiteralType = iota
	LiteralString
)

type LiteralExpr struct {
	Typ   LiteralType
	Value string
}
