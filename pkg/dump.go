package lilt

import "strings"

// Dump renders a program as an indented outline, two spaces per level, with
// each block introduced by a "block" header. It is a debugging aid for the
// CLI's tree mode and has no role in evaluation.
func Dump(prog *Program) string {
	var sb strings.Builder
	writeBlock(&sb, prog.Statements, 0)

	return sb.String()
}

func writeIndent(sb *strings.Builder, level int) {
	sb.WriteString(strings.Repeat("  ", level))
}

func writeBlock(sb *strings.Builder, stmts []Stmt, level int) {
	writeIndent(sb, level)
	sb.WriteString("block")

	for _, s := range stmts {
		sb.WriteString("\n")
		writeStmt(sb, s, level+1)
	}
}

func writeStmt(sb *strings.Builder, s Stmt, level int) {
	switch s := s.(type) {
	case *PrintStmt:
		writeIndent(sb, level)
		sb.WriteString("print\n")
		writeExpr(sb, s.Value, level+1)
	case *LetStmt:
		writeIndent(sb, level)
		sb.WriteString("let\n")
		writeIndent(sb, level+1)
		sb.WriteString(s.Name)
		sb.WriteString("\n")
		writeExpr(sb, s.Value, level+1)
	case *AssignStmt:
		writeIndent(sb, level)
		sb.WriteString("assign\n")
		writeIndent(sb, level+1)
		sb.WriteString(s.Name)
		sb.WriteString("\n")
		writeExpr(sb, s.Value, level+1)
	case *IfStmt:
		writeIf(sb, s, level, "if")
	case *WhileStmt:
		writeIndent(sb, level)
		sb.WriteString("while\n")
		writeCond(sb, s.Cond, level+1)
		sb.WriteString("\n")
		writeBlock(sb, s.Body, level+1)
	}
}

func writeIf(sb *strings.Builder, s *IfStmt, level int, keyword string) {
	writeIndent(sb, level)
	sb.WriteString(keyword)

	if s.Cond != nil {
		sb.WriteString("\n")
		writeCond(sb, s.Cond, level+1)
	}

	sb.WriteString("\n")
	writeBlock(sb, s.Body, level+1)

	if s.Next != nil {
		sb.WriteString("\n")

		next := "elseif"
		if s.Next.Cond == nil {
			next = "else"
		}

		writeIf(sb, s.Next, level+1, next)
	}
}

func writeCond(sb *strings.Builder, c *Condition, level int) {
	if len(c.Chain) == 1 {
		writeComparison(sb, c.Left, c.Chain[0], level)
		return
	}

	// Chained comparisons render as a conjunction over adjacent pairs
	writeIndent(sb, level)
	sb.WriteString("and")

	left := c.Left
	for _, cmp := range c.Chain {
		sb.WriteString("\n")
		writeComparison(sb, left, cmp, level+1)
		left = cmp.Right
	}
}

func writeComparison(sb *strings.Builder, left Expr, cmp Comparison, level int) {
	writeIndent(sb, level)
	sb.WriteString(string(cmp.Op))
	sb.WriteString("\n")
	writeExpr(sb, left, level+1)
	sb.WriteString("\n")
	writeExpr(sb, cmp.Right, level+1)
}

func writeExpr(sb *strings.Builder, e Expr, level int) {
	switch e := e.(type) {
	case *LiteralExpr:
		writeIndent(sb, level)
		sb.WriteString(e.Value)
	case *Identifier:
		writeIndent(sb, level)
		sb.WriteString(e.Name)
	case *BinaryExpr:
		writeIndent(sb, level)
		sb.WriteString(string(e.Operation))
		sb.WriteString("\n")
		writeExpr(sb, e.Op1, level+1)
		sb.WriteString("\n")
		writeExpr(sb, e.Op2, level+1)
	case *UnaryExpr:
		writeIndent(sb, level)
		sb.WriteString(string(e.Operation))
		sb.WriteString("\n")
		writeExpr(sb, e.Operand, level+1)
	}
}
