package rlox

// Callable is implemented by any runtime value that can be invoked like a
// function: built-ins (Clock) and user-defined closures (Function).
type Callable interface {
	// Call evaluates the callable against already-evaluated arguments. The
	// interpreter is passed through in case the implementation needs it
	// (user functions need it to execute their body).
	Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error)

	// Arity is the number of arguments this callable expects; the
	// interpreter checks this before invoking, so Call itself never needs
	// to bounds-check arguments.
	Arity() int
}
