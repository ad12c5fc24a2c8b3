package rlox

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runAndGetGlobal runs source end to end and returns the final value bound
// to name in the interpreter's global environment, for asserting on
// effects without needing to capture stdout from `print`.
func runAndGetGlobal(t *testing.T, source, name string) (interface{}, *Reporter) {
	t.Helper()
	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	interp := NewInterpreter(reporter)
	RunSource(context.Background(), reporter, interp, source)

	val, err := interp.globals.Get(NewToken(Identifier, name, nil, 1))
	require.NoError(t, err)
	return val, reporter
}

func TestInterpretArithmetic(t *testing.T) {
	val, reporter := runAndGetGlobal(t, `var result = (1 + 2) * 3 - 4 / 2;`, "result")
	require.False(t, reporter.HadError())
	assert.Equal(t, 7.0, val)
}

func TestInterpretStringConcatenation(t *testing.T) {
	val, reporter := runAndGetGlobal(t, `var result = "foo" + "bar";`, "result")
	require.False(t, reporter.HadError())
	assert.Equal(t, "foobar", val)
}

func TestInterpretMixedPlusIsTypeError(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	interp := NewInterpreter(reporter)
	RunSource(context.Background(), reporter, interp, `var result = "foo" + 1;`)
	assert.True(t, reporter.HadError())
}

func TestInterpretWhileLoop(t *testing.T) {
	val, reporter := runAndGetGlobal(t, `
		var i = 0;
		var result = 0;
		while (i < 5) {
			result = result + i;
			i = i + 1;
		}
	`, "result")
	require.False(t, reporter.HadError())
	assert.Equal(t, 10.0, val)
}

func TestInterpretForLoop(t *testing.T) {
	val, reporter := runAndGetGlobal(t, `
		var result = 0;
		for (var i = 0; i < 5; i = i + 1) {
			result = result + i;
		}
	`, "result")
	require.False(t, reporter.HadError())
	assert.Equal(t, 10.0, val)
}

func TestInterpretClosureCapturesDefiningEnvironment(t *testing.T) {
	val, reporter := runAndGetGlobal(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		counter();
		counter();
		var result = counter();
	`, "result")
	require.False(t, reporter.HadError())
	assert.Equal(t, 3.0, val)
}

func TestInterpretRecursiveFunction(t *testing.T) {
	val, reporter := runAndGetGlobal(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		var result = fib(10);
	`, "result")
	require.False(t, reporter.HadError())
	assert.Equal(t, 55.0, val)
}

func TestInterpretArityMismatchIsError(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	interp := NewInterpreter(reporter)
	RunSource(context.Background(), reporter, interp, `
		fun add(a, b) { return a + b; }
		add(1);
	`)
	assert.True(t, reporter.HadError())
}

func TestInterpretCallingNonCallableIsError(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	interp := NewInterpreter(reporter)
	RunSource(context.Background(), reporter, interp, `
		var notAFunction = 1;
		notAFunction();
	`)
	assert.True(t, reporter.HadError())
}

func TestInterpretEqualityAcrossTypesIsFalseNotError(t *testing.T) {
	val, reporter := runAndGetGlobal(t, `var result = (1 == "1");`, "result")
	require.False(t, reporter.HadError())
	assert.Equal(t, false, val)
}

func TestInterpretNilEqualsNil(t *testing.T) {
	val, reporter := runAndGetGlobal(t, `var result = (nil == nil);`, "result")
	require.False(t, reporter.HadError())
	assert.Equal(t, true, val)
}

func TestInterpretFalsyValues(t *testing.T) {
	val, reporter := runAndGetGlobal(t, `var result = !nil and !false;`, "result")
	require.False(t, reporter.HadError())
	assert.Equal(t, true, val)
}

func TestInterpretAssignmentUsesResolvedDistance(t *testing.T) {
	val, reporter := runAndGetGlobal(t, `
		var a = "global";
		var result;
		{
			fun setLocal() {
				a = "shadowed-from-outer-call";
			}
			var a = "local";
			setLocal();
			result = a;
		}
	`, "result")
	require.False(t, reporter.HadError())
	// setLocal closes over the outer `a`, so assigning inside it must not
	// touch the block-scoped shadow read back into `result`.
	assert.Equal(t, "local", val)
}

func TestInterpretClassDeclarationEvaluationIsUnsupported(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	interp := NewInterpreter(reporter)
	RunSource(context.Background(), reporter, interp, `
		class Greeter {}
		var g = Greeter();
	`)
	assert.True(t, reporter.HadError())
}

func TestInterpretStringifyIntegralFloat(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	interp := NewInterpreter(reporter)
	assert.Equal(t, "3", interp.stringify(3.0))
	assert.Equal(t, "3.5", interp.stringify(3.5))
	assert.Equal(t, "nil", interp.stringify(nil))
}
