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

// Tokenize runs only the scanner over the file named by args[0] and prints
// one line per token, in the same type/lexeme/literal shape Token.String
// renders.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	reporter := rlox.NewReporter(stdio.Stderr)
	scanner := rlox.NewScanner(bytes.NewBuffer(data), reporter)
	tokens := scanner.ScanTokens()

	for _, tok := range tokens {
		fmt.Fprintln(stdio.Stdout, tok.String())
	}

	if reporter.HadError() {
		return errors.New("error tokenizing script")
	}

	return nil
}
