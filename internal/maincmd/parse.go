package maincmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jasedbrown/rlox"
	"github.com/mna/mainer"
)

// Parse runs the scanner and parser over the file named by args[0] and
// prints the resulting syntax tree in parenthesized form. It does not run
// the resolver or interpreter, so a program that would fail to resolve
// (e.g. a self-referencing initializer) still prints a tree here.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	reporter := rlox.NewReporter(stdio.Stderr)
	scanner := rlox.NewScanner(bytes.NewBuffer(data), reporter)
	tokens := scanner.ScanTokens()
	if reporter.HadError() {
		return errors.New("error scanning script")
	}

	parser := rlox.NewParser(tokens, reporter)
	statements := parser.Parse()
	if reporter.HadError() {
		return errors.New("error parsing script")
	}

	printer := &rlox.AstPrinter{}
	fmt.Fprint(stdio.Stdout, printer.PrintStatements(statements))

	return nil
}
