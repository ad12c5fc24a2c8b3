package maincmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jasedbrown/rlox"
	"github.com/mna/mainer"
)

// Run executes the script named by args[0], or starts an interactive REPL
// when no path is given. Exit code 65 (mainer.Failure, mapped in cmd/rlox) is
// used both for a scan/parse/resolve error observed before any statement
// ran and for a runtime error raised while interpreting, matching the
// two-bucket convention of Unix sysexits: 64 is reserved for usage errors,
// caught earlier in Cmd.Validate.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) == 0 {
		return runPrompt(ctx, stdio)
	}

	return runFile(ctx, stdio, args[0])
}

func runFile(ctx context.Context, stdio mainer.Stdio, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	reporter := rlox.NewReporter(stdio.Stderr)
	interp := rlox.NewInterpreterWithOutput(stdio.Stdout, reporter)
	rlox.RunSource(ctx, reporter, interp, string(data))

	if reporter.HadError() {
		return errors.New("error running script")
	}

	return nil
}

func runPrompt(ctx context.Context, stdio mainer.Stdio) error {
	reporter := rlox.NewReporter(stdio.Stderr)
	interp := rlox.NewInterpreterWithOutput(stdio.Stdout, reporter)

	scanner := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, "> ")

		if !scanner.Scan() {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		rlox.RunREPLLine(ctx, reporter, interp, line)
		reporter.Reset()
	}
}
