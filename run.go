package rlox

import (
	"bytes"
	"context"
	"strings"
)

// RunSource scans, parses, resolves and interprets a chunk of source text
// against interp. Because interp owns its own global Environment across
// calls, invoking RunSource repeatedly with the same Interpreter is what
// gives a REPL persistent top-level bindings between lines, while a script
// run just calls it once.
//
// Errors are reported through reporter rather than returned; callers check
// reporter.HadError() afterward to decide an exit code, matching how the
// scanner/parser/resolver/interpreter all report diagnostics uniformly
// instead of threading a different error type back out of each phase.
func RunSource(ctx context.Context, reporter *Reporter, interp *Interpreter, source string) {
	scanner := NewScanner(bytes.NewBufferString(source), reporter)
	tokens := scanner.ScanTokens()
	if reporter.HadError() {
		return
	}

	parser := NewParser(tokens, reporter)
	statements := parser.Parse()
	if reporter.HadError() {
		return
	}

	resolver := NewResolver(interp, reporter)
	resolver.Resolve(statements)
	if reporter.HadError() {
		return
	}

	interp.Interpret(ctx, statements)
}

// RunREPLLine runs one line of interactive input. A line that is a bare
// expression with no trailing `;` (e.g. `1 + 2`, typed at the prompt) is
// echoed back the way print would render it, without requiring the user
// to type `print` for every scratch calculation; a line that already ends
// in `;` or `}` runs exactly as RunSource would run it.
func RunREPLLine(ctx context.Context, reporter *Reporter, interp *Interpreter, line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	if !strings.HasSuffix(trimmed, ";") && !strings.HasSuffix(trimmed, "}") {
		RunSource(ctx, reporter, interp, "print "+trimmed+";")
		return
	}

	RunSource(ctx, reporter, interp, trimmed)
}
