package rlox

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Interpreter walks a resolved AST and evaluates it directly, with no
// intermediate bytecode or compilation step. Variable lookups that the
// resolver could pin to a fixed distance go through the environment's
// indexed accessors (GetAt/AssignAt); anything the resolver left
// unresolved is assumed global and falls through to the normal recursive
// Get/Assign walk.
type Interpreter struct {
	reporter    *Reporter
	out         io.Writer
	globals     *Environment
	environment *Environment

	// locals maps a resolved expression node to the number of environment
	// hops between where it appears and where its name is declared, as
	// computed by the resolver. Go interfaces holding pointer-typed AST
	// nodes compare by pointer identity, so this map is keyed correctly
	// even though two syntactically identical expressions are distinct keys.
	locals map[Expr]int
}

// NewInterpreter builds an interpreter that writes `print` output to
// os.Stdout. Use NewInterpreterWithOutput to redirect it, e.g. in a CLI
// command that was handed an explicit mainer.Stdio, or in tests.
func NewInterpreter(reporter *Reporter) *Interpreter {
	return NewInterpreterWithOutput(os.Stdout, reporter)
}

func NewInterpreterWithOutput(out io.Writer, reporter *Reporter) *Interpreter {
	globals := NewEnvironment(nil)
	return &Interpreter{
		reporter:    reporter,
		out:         out,
		globals:     globals,
		environment: globals,
		locals:      make(map[Expr]int),
	}
}

// Interpret executes a parsed, resolved program. A runtime error aborts
// execution of the remaining statements and is reported through the
// shared Reporter, matching how scan/parse/resolve errors are surfaced.
// ctx is checked between top-level statements only — not on every
// expression evaluation — so a `--` interrupted REPL or runaway script can
// be cancelled at a statement boundary without threading a context through
// every Visit method.
func (i *Interpreter) Interpret(ctx context.Context, statements []Stmt) {
	for _, stmt := range statements {
		if ctx.Err() != nil {
			return
		}

		if err := i.execute(stmt); err != nil {
			i.reporter.RuntimeError(err)
			return
		}
	}
}

// resolve records the scope distance the resolver computed for expr. It is
// called exactly once per resolved expression, during the resolver pass,
// before Interpret ever runs.
func (i *Interpreter) resolve(expr Expr, distance int) {
	i.locals[expr] = distance
}

func (i *Interpreter) execute(stmt Stmt) error {
	return stmt.Accept(i)
}

func (i *Interpreter) VisitBlockStmt(stmt *Block) error {
	return i.executeBlock(stmt.Statements, NewEnvironment(i.environment))
}

// executeBlock runs statements against env, restoring the interpreter's
// previous environment before returning on every exit path — including an
// error, and including a *ReturnErr unwinding through the block — so a
// function call never leaks its inner environment to the caller.
func (i *Interpreter) executeBlock(statements []Stmt, env *Environment) error {
	previous := i.environment
	defer func() { i.environment = previous }()

	i.environment = env
	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

// VisitVarStmt interprets a variable declaration. If the variable has an
// initializer we evaluate it first; otherwise, like other dynamically
// typed languages, it starts out nil.
func (i *Interpreter) VisitVarStmt(stmt *VarStmt) error {
	var val interface{}
	var err error
	if stmt.Initializer != nil {
		val, err = i.evaluate(stmt.Initializer)
		if err != nil {
			return err
		}
	}

	i.environment.Define(stmt.Name.Lexeme, val)
	return nil
}

func (i *Interpreter) VisitVariableExpr(expr *VarExpr) (interface{}, error) {
	return i.lookUpVariable(expr.Name, expr)
}

func (i *Interpreter) lookUpVariable(name Token, expr Expr) (interface{}, error) {
	if distance, ok := i.locals[expr]; ok {
		return i.environment.GetAt(distance, name.Lexeme), nil
	}

	return i.globals.Get(name)
}

// VisitAssignExpr evaluates the right-hand side and stores it in the
// named variable. When the resolver pinned a distance for this expression
// we assign directly at that depth (AssignAt); otherwise the name is
// assumed global and assigned in the global environment. Assignment is an
// expression and yields the assigned value, so it can be nested:
// var a = 1; print a = 2; // "2"
func (i *Interpreter) VisitAssignExpr(expr *Assign) (interface{}, error) {
	val, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := i.locals[expr]; ok {
		i.environment.AssignAt(distance, expr.Name, val)
		return val, nil
	}

	if err := i.globals.Assign(expr.Name, val); err != nil {
		return nil, err
	}

	return val, nil
}

// VisitExpressionStmt interprets an expression statement. Statements
// produce no value, so the result of evaluating the expression is
// discarded.
func (i *Interpreter) VisitExpressionStmt(stmt *Expression) error {
	_, err := i.evaluate(stmt.Expression)
	return err
}

func (i *Interpreter) VisitIfStmt(stmt *IfStmt) error {
	condition, err := i.evaluate(stmt.Condition)
	if err != nil {
		return err
	}

	if i.isTruthy(condition) {
		return i.execute(stmt.ThenBranch)
	} else if stmt.ElseBranch != nil {
		return i.execute(stmt.ElseBranch)
	}

	return nil
}

func (i *Interpreter) VisitWhileStmt(stmt *WhileStmt) error {
	for {
		condition, err := i.evaluate(stmt.Condition)
		if err != nil {
			return err
		}

		if !i.isTruthy(condition) {
			return nil
		}

		if err := i.execute(stmt.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) VisitFunctionStmt(stmt *FunctionStmt) error {
	fn := NewFunction(stmt, i.environment)
	i.environment.Define(stmt.Name.Lexeme, fn)
	return nil
}

func (i *Interpreter) VisitReturnStmt(stmt *ReturnStmt) error {
	var value interface{}
	if stmt.Value != nil {
		var err error
		value, err = i.evaluate(stmt.Value)
		if err != nil {
			return err
		}
	}

	return &ReturnErr{Value: value}
}

// VisitClassStmt, VisitGetExpr, VisitSetExpr, VisitThisExpr and
// VisitSuperExpr all reject at runtime: classes are reserved but
// unexecuted (SPEC_FULL.md 4.C). The resolver still walks these nodes so a
// program that merely declares a class resolves cleanly; only evaluating
// one fails.
func (i *Interpreter) VisitClassStmt(stmt *ClassStmt) error {
	return NewUnsupportedError(stmt.Name, "classes")
}

func (i *Interpreter) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	return nil, NewUnsupportedError(expr.Name, "property access")
}

func (i *Interpreter) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	return nil, NewUnsupportedError(expr.Name, "property assignment")
}

func (i *Interpreter) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return nil, NewUnsupportedError(expr.Keyword, "'this'")
}

func (i *Interpreter) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	return nil, NewUnsupportedError(expr.Keyword, "'super'")
}

func (i *Interpreter) VisitPrintStmt(stmt *Print) error {
	val, err := i.evaluate(stmt.Expression)
	if err != nil {
		return err
	}

	fmt.Fprintln(i.out, i.stringify(val))
	return nil
}

// stringify renders a runtime value the way `print` displays it. Numbers
// use the shortest decimal representation that round-trips back to the
// same float64, with a trailing ".0" trimmed for integral values — e.g.
// 3 prints as "3", 3.5 prints as "3.5", never "3.000000".
func (i *Interpreter) stringify(val interface{}) string {
	if val == nil {
		return "nil"
	}

	if f, ok := val.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	return fmt.Sprint(val)
}

func (i *Interpreter) VisitBinaryExpr(expr *Binary) (interface{}, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case Greater:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) > right.(float64), nil
	case GreaterEqual:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) >= right.(float64), nil
	case Less:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) < right.(float64), nil
	case LessEqual:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) <= right.(float64), nil
	case BangEqual:
		return !i.isEqual(left, right), nil
	case EqualEqual:
		return i.isEqual(left, right), nil
	case Minus:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) - right.(float64), nil
	case Plus:
		// Plus handles both string concatenation and arithmetic addition.
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}

		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}

		return nil, NewIncorrectTypeError(expr.Operator, "Operands must be two numbers or two strings.")
	case Slash:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) / right.(float64), nil
	case Star:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) * right.(float64), nil
	}

	return nil, NewUnreachableError(expr.Operator, "unknown binary operator")
}

// isEqual implements full Lox equality: nil equals only nil, values of
// differing dynamic type are simply unequal (never an error), and two
// values of the same comparable type compare with Go's ==.
func (i *Interpreter) isEqual(left, right interface{}) bool {
	if left == nil && right == nil {
		return true
	}
	if left == nil || right == nil {
		return false
	}

	return left == right
}

func (i *Interpreter) VisitLogicalExpr(expr *Logical) (interface{}, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	if expr.Operator.Type == Or {
		if i.isTruthy(left) {
			return left, nil
		}
	} else {
		if !i.isTruthy(left) {
			return left, nil
		}
	}

	return i.evaluate(expr.Right)
}

func (i *Interpreter) VisitCallExpr(expr *Call) (interface{}, error) {
	callee, err := i.evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]interface{}, 0, len(expr.Arguments))
	for _, argExpr := range expr.Arguments {
		arg, err := i.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, arg)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, NewIncorrectTypeError(expr.Paren, "Can only call functions and classes.")
	}

	if len(arguments) != callable.Arity() {
		return nil, NewArityError(expr.Paren, callable.Arity(), len(arguments))
	}

	return callable.Call(i, arguments)
}

// VisitGroupingExpr evaluates a parenthesized subexpression by recursively
// evaluating the expression it wraps.
func (i *Interpreter) VisitGroupingExpr(expr *Grouping) (interface{}, error) {
	return i.evaluate(expr.Expression)
}

// VisitLiteralExpr converts the literal tree node produced during parsing
// into its runtime value, which is just the Token's literal payload
// carried over from scanning.
func (i *Interpreter) VisitLiteralExpr(expr *Literal) (interface{}, error) {
	return expr.Value, nil
}

// VisitUnaryExpr evaluates a unary expression. Its single operand is
// evaluated first, so `!!true` evaluates the innermost operand before
// either `!` is applied.
func (i *Interpreter) VisitUnaryExpr(expr *Unary) (interface{}, error) {
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case Bang:
		return !i.isTruthy(right), nil
	case Minus:
		if err := i.checkNumberOperand(expr.Operator, right); err != nil {
			return nil, err
		}
		return -right.(float64), nil
	}

	return nil, NewUnreachableError(expr.Operator, "unknown unary operator")
}

func (i *Interpreter) evaluate(expr Expr) (interface{}, error) {
	return expr.Accept(i)
}

// isTruthy determines the truthiness of a value. In Lox, nil and the
// boolean false are falsy; everything else, including 0 and "", is truthy.
func (i *Interpreter) isTruthy(val interface{}) bool {
	if val == nil {
		return false
	}

	if b, ok := val.(bool); ok {
		return b
	}

	return true
}

func (i *Interpreter) checkNumberOperand(operator Token, operand interface{}) error {
	if _, ok := operand.(float64); ok {
		return nil
	}

	return NewIncorrectTypeError(operator, "Operand must be a number.")
}

func (i *Interpreter) checkNumberOperands(operator Token, left, right interface{}) error {
	_, lok := left.(float64)
	_, rok := right.(float64)
	if lok && rok {
		return nil
	}

	return NewIncorrectTypeError(operator, "Operands must be numbers.")
}
