package rlox

import (
	"github.com/jasedbrown/rlox/util"
)

type FunctionType int

type ClassType int

const (
	FunctionTypeNone FunctionType = iota
	FunctionTypeFunction
	FunctionTypeMethod
	FunctionTypeInitializer
)

const (
	ClassTypeNone ClassType = iota
	ClassTypeClass
)

// Resolver is a static analysis pass that runs between parsing and
// interpretation. It walks the same tree the interpreter will walk, but
// instead of producing values it computes, for every variable reference,
// how many enclosing scopes separate it from its declaration — a "hop
// count" the interpreter stores and later uses for O(1) environment
// lookups instead of walking the chain at every access.
type Resolver struct {
	interpreter *Interpreter

	// scopes keeps track of the stack of scopes currently in scope. Each
	// element in the stack is a map representing a new block scope. Keys,
	// like in environment is the variable name, the value is boolean used
	// to track if we have finished resolving the variable's initializer.
	// The scope stack only tracks block scopes; variables declared at the
	// top level are not tracked here since they are more dynamic in Lox.
	// While resolving a variable, if we don't find it in the stack of
	// scopes, we assume it must be global.
	scopes util.Stack[map[string]bool]

	currentFunction FunctionType
	currentClass    ClassType

	reporter *Reporter
}

func NewResolver(i *Interpreter, reporter *Reporter) *Resolver {
	stack := util.NewStack[map[string]bool]()
	return &Resolver{interpreter: i, scopes: *stack, reporter: reporter, currentFunction: FunctionTypeNone, currentClass: ClassTypeNone}
}

// Resolve walks every statement in the program. Errors are reported
// through the shared Reporter, same as the scanner and parser.
func (r *Resolver) Resolve(statements []Stmt) {
	if err := r.resolveStatements(statements); err != nil {
		r.reporter.RuntimeError(err)
	}
}

// VisitAssignExpr resolves an assignment expression. First we resolve the
// expression for the assigned value in case it also contains references to
// other variables, then resolve the variable being assigned to.
func (r *Resolver) VisitAssignExpr(expr *Assign) (interface{}, error) {
	_, err := r.resolveExpr(expr.Value)
	if err != nil {
		return nil, err
	}

	r.resolveLocal(expr, expr.Name)
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(expr *Logical) (interface{}, error) {
	// Static analysis does no control flow or short-circuiting, so a
	// logical expression resolves exactly like any other binary operator.
	if _, err := r.resolveExpr(expr.Left); err != nil {
		return nil, err
	}
	if _, err := r.resolveExpr(expr.Right); err != nil {
		return nil, err
	}

	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(expr *Binary) (interface{}, error) {
	if _, err := r.resolveExpr(expr.Left); err != nil {
		return nil, err
	}
	if _, err := r.resolveExpr(expr.Right); err != nil {
		return nil, err
	}

	return nil, nil
}

func (r *Resolver) VisitCallExpr(expr *Call) (interface{}, error) {
	if _, err := r.resolveExpr(expr.Callee); err != nil {
		return nil, err
	}

	for _, argument := range expr.Arguments {
		if _, err := r.resolveExpr(argument); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(expr *Grouping) (interface{}, error) {
	return r.resolveExpr(expr.Expression)
}

func (r *Resolver) VisitLiteralExpr(expr *Literal) (interface{}, error) {
	// A literal mentions no variables and contains no subexpression, so
	// there is no work to do here.
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(expr *Unary) (interface{}, error) {
	return r.resolveExpr(expr.Right)
}

// VisitVariableExpr resolves a variable reference. We first check whether
// the variable is being read inside its own initializer: if it exists in
// the current scope but is mapped to false, it has been declared but not
// yet defined, which is always an error.
func (r *Resolver) VisitVariableExpr(expr *VarExpr) (interface{}, error) {
	if !r.scopes.IsEmpty() {
		scope, err := r.scopes.Peek()
		if err == nil {
			if val, ok := scope[expr.Name.Lexeme]; ok && !val {
				return nil, NewResolveError(expr.Name, "Can't read local variable in its own initializer.")
			}
		}
	}

	r.resolveLocal(expr, expr.Name)
	return nil, nil
}

func (r *Resolver) VisitClassStmt(stmt *ClassStmt) error {
	enclosingClass := r.currentClass
	r.currentClass = ClassTypeClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil && stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
		return NewResolveError(stmt.Superclass.Name, "A class can't inherit from itself.")
	}

	if stmt.Superclass != nil {
		if _, err := r.resolveExpr(stmt.Superclass); err != nil {
			return err
		}
	}

	// We resolve "this" exactly like any other local variable. Before
	// resolving method bodies, push a new scope and define "this" in it;
	// once every method is resolved, discard the scope again.
	r.beginScope()
	scope, err := r.scopes.Peek()
	if err != nil {
		return err
	}
	scope["this"] = true

	for _, method := range stmt.Methods {
		declaration := FunctionTypeMethod
		if method.Name.Lexeme == "init" {
			declaration = FunctionTypeInitializer
		}

		if err := r.resolveFunction(method, declaration); err != nil {
			return err
		}
	}

	r.endScope()
	r.currentClass = enclosingClass
	return nil
}

func (r *Resolver) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	if r.currentClass == ClassTypeNone {
		return nil, NewResolveError(expr.Keyword, "Can't use 'this' outside of a class.")
	}

	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	if r.currentClass == ClassTypeNone {
		return nil, NewResolveError(expr.Keyword, "Can't use 'super' outside of a class.")
	}

	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	return r.resolveExpr(expr.Object)
}

func (r *Resolver) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	if _, err := r.resolveExpr(expr.Value); err != nil {
		return nil, err
	}

	return r.resolveExpr(expr.Object)
}

// VisitBlockStmt visits a block statement, which creates a new lexical
// scope, resolves the statements inside it, and then discards the scope.
func (r *Resolver) VisitBlockStmt(stmt *Block) error {
	r.beginScope()
	err := r.resolveStatements(stmt.Statements)
	r.endScope()
	return err
}

func (r *Resolver) VisitExpressionStmt(stmt *Expression) error {
	_, err := r.resolveExpr(stmt.Expression)
	return err
}

func (r *Resolver) VisitPrintStmt(stmt *Print) error {
	_, err := r.resolveExpr(stmt.Expression)
	return err
}

// VisitVarStmt resolves a variable declaration. We split binding into two
// steps — declare then define — so that resolving the initializer
// expression can detect a variable referring to itself.
func (r *Resolver) VisitVarStmt(stmt *VarStmt) error {
	r.declare(stmt.Name)
	if stmt.Initializer != nil {
		if _, err := r.resolveExpr(stmt.Initializer); err != nil {
			return err
		}
	}

	r.define(stmt.Name)
	return nil
}

// VisitIfStmt resolves an if statement. Unlike interpretation, resolution
// has no control flow: both branches are resolved unconditionally.
func (r *Resolver) VisitIfStmt(stmt *IfStmt) error {
	if _, err := r.resolveExpr(stmt.Condition); err != nil {
		return err
	}
	if err := r.resolveStmt(stmt.ThenBranch); err != nil {
		return err
	}
	if stmt.ElseBranch != nil {
		return r.resolveStmt(stmt.ElseBranch)
	}

	return nil
}

// VisitWhileStmt resolves a while statement: the condition and body are
// each resolved exactly once, regardless of how many times the loop would
// actually run.
func (r *Resolver) VisitWhileStmt(stmt *WhileStmt) error {
	if _, err := r.resolveExpr(stmt.Condition); err != nil {
		return err
	}
	return r.resolveStmt(stmt.Body)
}

// VisitFunctionStmt resolves a function declaration. The function's own
// name is defined eagerly, before its body is resolved, so the body may
// refer to the function recursively.
func (r *Resolver) VisitFunctionStmt(stmt *FunctionStmt) error {
	r.declare(stmt.Name)
	r.define(stmt.Name)

	return r.resolveFunction(stmt, FunctionTypeFunction)
}

func (r *Resolver) VisitReturnStmt(stmt *ReturnStmt) error {
	if r.currentFunction == FunctionTypeNone {
		return NewResolveError(stmt.Keyword, "Can't return from top-level code.")
	}

	if stmt.Value != nil {
		if r.currentFunction == FunctionTypeInitializer {
			return NewResolveError(stmt.Keyword, "Can't return a value from an initializer.")
		}

		if _, err := r.resolveExpr(stmt.Value); err != nil {
			return err
		}
	}

	return nil
}

func (r *Resolver) resolveStatements(statements []Stmt) error {
	for _, stmt := range statements {
		if err := r.resolveStmt(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (r *Resolver) resolveStmt(statement Stmt) error {
	return statement.Accept(r)
}

func (r *Resolver) resolveExpr(expr Expr) (interface{}, error) {
	return expr.Accept(r)
}

func (r *Resolver) beginScope() {
	r.scopes.Push(make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes.Pop()
}

// declare adds a variable to the innermost scope so that it shadows any
// outer one and so we know the variable exists. It is marked "not ready
// yet" by binding the name to false.
func (r *Resolver) declare(name Token) {
	if r.scopes.IsEmpty() {
		return
	}

	scope, _ := r.scopes.Peek()
	scope[name.Lexeme] = false
}

// define marks a variable as fully initialized and ready for use.
func (r *Resolver) define(name Token) {
	if r.scopes.IsEmpty() {
		return
	}

	scope, _ := r.scopes.Peek()
	scope[name.Lexeme] = true
}

// resolveLocal walks the scope stack from innermost to outermost looking
// for name. If found at depth i from the top, it records that distance
// against expr on the interpreter; if the walk exhausts every scope, the
// variable is assumed global and no distance is recorded.
func (r *Resolver) resolveLocal(expr Expr, name Token) {
	for i := r.scopes.Size() - 1; i >= 0; i-- {
		val, _ := r.scopes.Get(i)
		if _, ok := val[name.Lexeme]; ok {
			r.interpreter.resolve(expr, r.scopes.Size()-1-i)
			return
		}
	}
}

// resolveFunction resolves a function's body in a fresh scope holding its
// parameters. Unlike the interpreter — which doesn't touch a function's
// body until it's called — resolution walks into the body immediately.
func (r *Resolver) resolveFunction(function *FunctionStmt, funcType FunctionType) error {
	enclosingFunction := r.currentFunction
	r.currentFunction = funcType

	r.beginScope()
	for _, param := range function.Params {
		r.declare(param)
		r.define(param)
	}

	err := r.resolveStatements(function.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
	return err
}
