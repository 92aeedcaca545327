package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Unparse renders an expression back to source. Every binary, unary and
// assignment node is wrapped in parentheses, so the output shows the
// grouping the parser chose: 1 + 2 * 3 becomes (1 + (2 * 3)).
func Unparse(expr Expr) string {
	return unparseExpr(expr)
}

// UnparseProgram converts a program back to source code lines
func UnparseProgram(prog *Program) []string {
	if prog == nil || len(prog.Statements) == 0 {
		return []string{}
	}

	var lines []string
	for _, stmt := range prog.Statements {
		lines = append(lines, unparseStmt(stmt, 0))
	}
	return lines
}

// unparseStmt converts a statement to source code
func unparseStmt(stmt Stmt, indent int) string {
	indentStr := strings.Repeat("  ", indent)

	switch s := stmt.(type) {
	case *ExprStmt:
		if s.Expr == nil {
			return indentStr + ";"
		}
		return indentStr + unparseExpr(s.Expr) + ";"

	case *VarDecl:
		return indentStr + unparseDecl(s) + ";"

	case *BlockStmt:
		return indentStr + unparseBlock(s, indent)

	case *IfStmt:
		var sb strings.Builder
		sb.WriteString(indentStr + "if (" + unparseExpr(s.Condition) + ") " + unparseBlock(s.Then, indent))
		switch e := s.Else.(type) {
		case *IfStmt:
			sb.WriteString(" else " + strings.TrimPrefix(unparseStmt(e, indent), indentStr))
		case *BlockStmt:
			sb.WriteString(" else " + unparseBlock(e, indent))
		}
		return sb.String()

	case *WhileStmt:
		return indentStr + "while (" + unparseExpr(s.Condition) + ") " + unparseBlock(s.Body, indent)

	case *ForStmt:
		var init, cond, update string
		switch i := s.Init.(type) {
		case *VarDecl:
			init = unparseDecl(i)
		case *ExprStmt:
			init = unparseExpr(i.Expr)
		}
		if s.Condition != nil {
			cond = " " + unparseExpr(s.Condition)
		}
		if s.Update != nil {
			update = " " + unparseExpr(s.Update)
		}
		return indentStr + "for (" + init + ";" + cond + ";" + update + ") " + unparseBlock(s.Body, indent)

	case *CaseStmt:
		var sb strings.Builder
		sb.WriteString(indentStr + "case (" + unparseExpr(s.Discriminant) + ") {\n")
		inner := strings.Repeat("  ", indent+1)
		for _, arm := range s.Tests {
			if arm.Default {
				sb.WriteString(inner + "default -> ")
			} else {
				sb.WriteString(inner + "of " + unparseExpr(arm.Test) + " -> ")
			}
			sb.WriteString(strings.TrimPrefix(unparseStmt(arm.Body, indent+1), inner) + "\n")
		}
		sb.WriteString(indentStr + "}")
		return sb.String()

	case *ReturnStmt:
		if s.Value == nil {
			return indentStr + "return;"
		}
		return indentStr + "return " + unparseExpr(s.Value) + ";"

	case *BreakStmt:
		return indentStr + "break;"

	case *ContinueStmt:
		return indentStr + "continue;"

	case *ImportStmt:
		return indentStr + "import " + strconv.Quote(s.Path) + ";"

	case *ExportStmt:
		return indentStr + "export " + unparseDecl(s.Decl) + ";"

	default:
		return indentStr + fmt.Sprintf("<unknown statement: %T>", stmt)
	}
}

func unparseDecl(d *VarDecl) string {
	kw := "let "
	if d.Const {
		kw = "const "
	}
	if d.Init == nil {
		return kw + d.Name
	}
	return kw + d.Name + " = " + unparseExpr(d.Init)
}

func unparseBlock(b *BlockStmt, indent int) string {
	if len(b.Statements) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, stmt := range b.Statements {
		sb.WriteString(unparseStmt(stmt, indent+1) + "\n")
	}
	sb.WriteString(strings.Repeat("  ", indent) + "}")
	return sb.String()
}

// unparseExpr converts an expression to source code
func unparseExpr(expr Expr) string {
	switch e := expr.(type) {
	case *LiteralExpr:
		return unparseLiteral(e.Value)

	case *IdentifierExpr:
		return e.Name

	case *UnaryExpr:
		if e.Postfix {
			return "(" + unparseExpr(e.Operand) + e.Operator.String() + ")"
		}
		return "(" + e.Operator.String() + unparseExpr(e.Operand) + ")"

	case *BinaryExpr:
		return "(" + unparseExpr(e.Left) + " " + e.Operator.String() + " " + unparseExpr(e.Right) + ")"

	case *AssignExpr:
		return "(" + unparseExpr(e.Target) + " = " + unparseExpr(e.Value) + ")"

	case *MemberExpr:
		return unparseExpr(e.Object) + "." + e.Property

	case *CallExpr:
		return unparseExpr(e.Callee) + "(" + unparseArgs(e.Args) + ")"

	case *CloneExpr:
		if len(e.Overrides) == 0 {
			return "clone " + unparseExpr(e.Prototype) + " {}"
		}
		parts := make([]string, len(e.Overrides))
		for i, o := range e.Overrides {
			parts[i] = o.Key + " = " + unparseExpr(o.Value)
		}
		return "clone " + unparseExpr(e.Prototype) + " { " + strings.Join(parts, ", ") + " }"

	case *MethodExpr:
		return "method (" + strings.Join(e.Params, ", ") + ") " + unparseBlock(e.Body, 0)

	default:
		return fmt.Sprintf("<unknown expr: %T>", expr)
	}
}

// unparseLiteral converts a literal payload to its source representation
func unparseLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case string:
		return strconv.Quote(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// unparseArgs converts argument expressions to a comma-separated string
func unparseArgs(args []Expr) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = unparseExpr(arg)
	}
	return strings.Join(parts, ", ")
}
