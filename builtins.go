package rlox

import "time"

// Clock is the interpreter's single built-in: clock() returns milliseconds
// since the Unix epoch. It ignores arguments (its arity is 0, so none ever
// arrive).
type Clock struct{}

func (c Clock) Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error) {
	return float64(time.Now().UnixMilli()), nil
}

func (c Clock) Arity() int {
	return 0
}

func (c Clock) String() string {
	return "<native fn>"
}

// builtins is the table Environment.Get falls back to once the global
// scope itself has no binding for a name.
var builtins = map[string]Callable{
	"clock": Clock{},
}

func lookupBuiltin(name string) (Callable, bool) {
	fn, ok := builtins[name]
	return fn, ok
}
