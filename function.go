package rlox

// Function is a user-defined closure: a function declaration bound to the
// environment that was current when it was defined. That captured
// environment — not the caller's environment — becomes the parent of the
// fresh environment created for each call, which is what gives closures
// lexical rather than dynamic scoping.
type Function struct {
	declaration *FunctionStmt
	closure     *Environment
}

func NewFunction(declaration *FunctionStmt, closure *Environment) Callable {
	return Function{declaration: declaration, closure: closure}
}

// Call creates a fresh environment parented at the closure, binds each
// parameter to its argument, and executes the body. A ReturnErr unwinding
// through the body yields its carried value; normal termination yields nil.
func (f Function) Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, arguments[i])
	}

	err := interpreter.executeBlock(f.declaration.Body, env)
	if err != nil {
		if ret, ok := err.(*ReturnErr); ok {
			return ret.Value, nil
		}

		return nil, err
	}

	return nil, nil
}

func (f Function) Arity() int {
	return len(f.declaration.Params)
}

func (f Function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}
