package rlox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveSource(t *testing.T, source string) (*Interpreter, *Reporter) {
	t.Helper()
	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	scanner := NewScanner(bytes.NewBufferString(source), reporter)
	parser := NewParser(scanner.ScanTokens(), reporter)
	stmts := parser.Parse()
	require.False(t, reporter.HadError())

	interp := NewInterpreter(reporter)
	resolver := NewResolver(interp, reporter)
	resolver.Resolve(stmts)
	return interp, reporter
}

func TestResolveSelfReferencingInitializerIsError(t *testing.T) {
	_, reporter := resolveSource(t, `var a = "outer"; { var a = a; }`)
	assert.True(t, reporter.HadError())
}

func TestResolveReturnOutsideFunctionIsError(t *testing.T) {
	_, reporter := resolveSource(t, `return 1;`)
	assert.True(t, reporter.HadError())
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	_, reporter := resolveSource(t, `print this;`)
	assert.True(t, reporter.HadError())
}

func TestResolveClassInheritingFromItselfIsError(t *testing.T) {
	_, reporter := resolveSource(t, `class Oops < Oops {}`)
	assert.True(t, reporter.HadError())
}

func TestResolveRecordsLocalDistance(t *testing.T) {
	interp, reporter := resolveSource(t, `var a = "global"; { var a = "local"; print a; }`)
	require.False(t, reporter.HadError())

	// The innermost `print a` refers to the block-scoped `a`, declared in
	// the same environment the print statement executes in (distance 0).
	foundDistance := false
	for _, d := range interp.locals {
		if d == 0 {
			foundDistance = true
		}
	}
	assert.True(t, foundDistance)
}
