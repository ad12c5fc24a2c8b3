package rlox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) ([]Stmt, *Reporter) {
	t.Helper()
	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	scanner := NewScanner(bytes.NewBufferString(source), reporter)
	parser := NewParser(scanner.ScanTokens(), reporter)
	return parser.Parse(), reporter
}

func TestParseVarDeclaration(t *testing.T) {
	stmts, reporter := parseSource(t, `var a = 1 + 2;`)
	require.False(t, reporter.HadError())
	require.Len(t, stmts, 1)

	varStmt, ok := stmts[0].(*VarStmt)
	require.True(t, ok)
	assert.Equal(t, "a", varStmt.Name.Lexeme)

	binary, ok := varStmt.Initializer.(*Binary)
	require.True(t, ok)
	assert.Equal(t, Plus, binary.Operator.Type)
}

func TestParseIfElse(t *testing.T) {
	stmts, reporter := parseSource(t, `if (true) print 1; else print 2;`)
	require.False(t, reporter.HadError())
	require.Len(t, stmts, 1)

	ifStmt, ok := stmts[0].(*IfStmt)
	require.True(t, ok)
	assert.NotNil(t, ifStmt.ThenBranch)
	assert.NotNil(t, ifStmt.ElseBranch)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, reporter := parseSource(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.False(t, reporter.HadError())
	require.Len(t, stmts, 1)

	block, ok := stmts[0].(*Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)

	_, isVar := block.Statements[0].(*VarStmt)
	assert.True(t, isVar)

	whileStmt, ok := block.Statements[1].(*WhileStmt)
	require.True(t, ok)

	bodyBlock, ok := whileStmt.Body.(*Block)
	require.True(t, ok)
	require.Len(t, bodyBlock.Statements, 2)
}

func TestParseForWithoutConditionDefaultsTrue(t *testing.T) {
	stmts, reporter := parseSource(t, `for (;;) print 1;`)
	require.False(t, reporter.HadError())

	whileStmt, ok := stmts[0].(*WhileStmt)
	require.True(t, ok)

	lit, ok := whileStmt.Condition.(*Literal)
	require.True(t, ok)
	assert.Equal(t, true, lit.Value)
}

func TestParseFunctionDeclarationAndCall(t *testing.T) {
	stmts, reporter := parseSource(t, `fun add(a, b) { return a + b; } add(1, 2);`)
	require.False(t, reporter.HadError())
	require.Len(t, stmts, 2)

	fn, ok := stmts[0].(*FunctionStmt)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Lexeme)
	assert.Len(t, fn.Params, 2)

	exprStmt, ok := stmts[1].(*Expression)
	require.True(t, ok)
	call, ok := exprStmt.Expression.(*Call)
	require.True(t, ok)
	assert.Len(t, call.Arguments, 2)
}

func TestParseAssignmentToInvalidTargetIsError(t *testing.T) {
	_, reporter := parseSource(t, `1 = 2;`)
	assert.True(t, reporter.HadError())
}

func TestParseClassWithMethodsIsReserved(t *testing.T) {
	stmts, reporter := parseSource(t, `class Greeter { hello() { print "hi"; } }`)
	require.False(t, reporter.HadError())
	require.Len(t, stmts, 1)

	class, ok := stmts[0].(*ClassStmt)
	require.True(t, ok)
	assert.Equal(t, "Greeter", class.Name.Lexeme)
	require.Len(t, class.Methods, 1)
	assert.Equal(t, "hello", class.Methods[0].Name.Lexeme)
}

func TestParseMissingSemicolonReportsError(t *testing.T) {
	_, reporter := parseSource(t, `print 1`)
	assert.True(t, reporter.HadError())
}
