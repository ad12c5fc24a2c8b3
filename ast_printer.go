package rlox

import (
	"fmt"
	"strings"
)

// AstPrinter renders a parsed program back to a parenthesized, Lisp-like
// text form. It exists for the parse debug subcommand, not for
// anything the interpreter itself depends on.
type AstPrinter struct {
	// last holds the most recently rendered statement. StmtVisitor methods
	// return only error, so printStmt stashes the text here immediately
	// after Accept returns instead of threading it through a return value.
	last string
}

func (ap *AstPrinter) PrintStatements(statements []Stmt) string {
	var b strings.Builder
	for _, stmt := range statements {
		b.WriteString(ap.printStmt(stmt))
		b.WriteString("\n")
	}
	return b.String()
}

func (ap *AstPrinter) printStmt(stmt Stmt) string {
	err := stmt.Accept(ap)
	if err != nil {
		return fmt.Sprintf("(error %s)", err)
	}
	return ap.last
}

func (ap *AstPrinter) printExpr(expr Expr) string {
	val, err := expr.Accept(ap)
	if err != nil {
		return fmt.Sprintf("(error %s)", err)
	}
	return val.(string)
}

func (ap *AstPrinter) VisitBlockStmt(stmt *Block) error {
	s := strings.Builder{}
	s.WriteString("(block")
	for _, st := range stmt.Statements {
		s.WriteString(" ")
		s.WriteString(ap.printStmt(st))
	}
	s.WriteString(")")
	ap.last = s.String()
	return nil
}

func (ap *AstPrinter) VisitExpressionStmt(stmt *Expression) error {
	ap.last = ap.parenthesize(";", stmt.Expression)
	return nil
}

func (ap *AstPrinter) VisitPrintStmt(stmt *Print) error {
	ap.last = ap.parenthesize("print", stmt.Expression)
	return nil
}

func (ap *AstPrinter) VisitVarStmt(stmt *VarStmt) error {
	if stmt.Initializer == nil {
		ap.last = fmt.Sprintf("(var %s)", stmt.Name.Lexeme)
		return nil
	}
	ap.last = fmt.Sprintf("(var %s %s)", stmt.Name.Lexeme, ap.printExpr(stmt.Initializer))
	return nil
}

func (ap *AstPrinter) VisitIfStmt(stmt *IfStmt) error {
	if stmt.ElseBranch == nil {
		ap.last = fmt.Sprintf("(if %s %s)", ap.printExpr(stmt.Condition), ap.printStmt(stmt.ThenBranch))
		return nil
	}
	ap.last = fmt.Sprintf("(if %s %s %s)", ap.printExpr(stmt.Condition), ap.printStmt(stmt.ThenBranch), ap.printStmt(stmt.ElseBranch))
	return nil
}

func (ap *AstPrinter) VisitWhileStmt(stmt *WhileStmt) error {
	ap.last = fmt.Sprintf("(while %s %s)", ap.printExpr(stmt.Condition), ap.printStmt(stmt.Body))
	return nil
}

func (ap *AstPrinter) VisitFunctionStmt(stmt *FunctionStmt) error {
	names := make([]string, len(stmt.Params))
	for i, p := range stmt.Params {
		names[i] = p.Lexeme
	}

	s := strings.Builder{}
	fmt.Fprintf(&s, "(fun %s (%s)", stmt.Name.Lexeme, strings.Join(names, " "))
	for _, st := range stmt.Body {
		s.WriteString(" ")
		s.WriteString(ap.printStmt(st))
	}
	s.WriteString(")")
	ap.last = s.String()
	return nil
}

func (ap *AstPrinter) VisitReturnStmt(stmt *ReturnStmt) error {
	if stmt.Value == nil {
		ap.last = "(return)"
		return nil
	}
	ap.last = ap.parenthesize("return", stmt.Value)
	return nil
}

func (ap *AstPrinter) VisitClassStmt(stmt *ClassStmt) error {
	s := strings.Builder{}
	fmt.Fprintf(&s, "(class %s", stmt.Name.Lexeme)
	if stmt.Superclass != nil {
		fmt.Fprintf(&s, " < %s", stmt.Superclass.Name.Lexeme)
	}
	for _, m := range stmt.Methods {
		s.WriteString(" ")
		s.WriteString(ap.printStmt(m))
	}
	s.WriteString(")")
	ap.last = s.String()
	return nil
}

func (ap *AstPrinter) VisitAssignExpr(expr *Assign) (interface{}, error) {
	return fmt.Sprintf("(= %s %s)", expr.Name.Lexeme, ap.printExpr(expr.Value)), nil
}

func (ap *AstPrinter) VisitBinaryExpr(expr *Binary) (interface{}, error) {
	return ap.parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right), nil
}

func (ap *AstPrinter) VisitCallExpr(expr *Call) (interface{}, error) {
	args := make([]Expr, 0, len(expr.Arguments)+1)
	args = append(args, expr.Callee)
	args = append(args, expr.Arguments...)
	return ap.parenthesize("call", args...), nil
}

func (ap *AstPrinter) VisitGroupingExpr(expr *Grouping) (interface{}, error) {
	return ap.parenthesize("group", expr.Expression), nil
}

func (ap *AstPrinter) VisitLiteralExpr(expr *Literal) (interface{}, error) {
	if expr.Value == nil {
		return "nil", nil
	}
	return fmt.Sprintf("%v", expr.Value), nil
}

func (ap *AstPrinter) VisitLogicalExpr(expr *Logical) (interface{}, error) {
	return ap.parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right), nil
}

func (ap *AstPrinter) VisitUnaryExpr(expr *Unary) (interface{}, error) {
	return ap.parenthesize(expr.Operator.Lexeme, expr.Right), nil
}

func (ap *AstPrinter) VisitVariableExpr(expr *VarExpr) (interface{}, error) {
	return expr.Name.Lexeme, nil
}

func (ap *AstPrinter) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	return fmt.Sprintf("(. %s %s)", ap.printExpr(expr.Object), expr.Name.Lexeme), nil
}

func (ap *AstPrinter) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	return fmt.Sprintf("(set %s %s %s)", ap.printExpr(expr.Object), expr.Name.Lexeme, ap.printExpr(expr.Value)), nil
}

func (ap *AstPrinter) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return "this", nil
}

func (ap *AstPrinter) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	return fmt.Sprintf("(super %s)", expr.Method.Lexeme), nil
}

func (ap *AstPrinter) parenthesize(name string, exprs ...Expr) string {
	s := strings.Builder{}
	s.WriteString("(" + name)

	for _, expr := range exprs {
		s.WriteString(" ")
		s.WriteString(ap.printExpr(expr))
	}

	s.WriteString(")")
	return s.String()
}
