// Package maincmd wires the command-line surface onto the rlox core:
// argument parsing, subcommand dispatch and exit codes all live here so
// cmd/rlox/main.go stays a one-line wrapper.
package maincmd

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "rlox"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<command>] [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<command>] [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

A tree-walking interpreter for a small, dynamically typed, lexically
scoped scripting language.

With no <command> and no <path>, starts an interactive REPL. With no
<command> and one <path>, runs the script at that path.

The <command> can be one of:
       run                       Run the script at <path> (default when a
                                 single path is given with no command).
       tokenize <path>           Run only the scanner and print the
                                 resulting tokens.
       parse <path>              Run the scanner and parser and print the
                                 resulting syntax tree.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {}

// commandsNeedingFile name the subcommands that operate on a single source
// file rather than starting a REPL.
var commandsNeedingFile = map[string]bool{"tokenize": true, "parse": true}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		c.cmdFn = c.Run
		return nil
	}

	commands := buildCmds(c)
	cmdName := c.args[0]

	if cmdFn, ok := commands[cmdName]; ok {
		c.cmdFn = cmdFn
		c.args = c.args[1:]
	} else {
		// No recognized subcommand name: treat all arguments as paths for
		// the implicit "run" command, e.g. `rlox script.rlox`.
		cmdName = "run"
		c.cmdFn = c.Run
	}

	switch {
	case commandsNeedingFile[cmdName] && len(c.args) == 0:
		return fmt.Errorf("%s: a file must be provided", cmdName)
	case len(c.args) > 1:
		return fmt.Errorf("%s: only one file may be provided", cmdName)
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args); err != nil {
		// each command prints its own diagnostics through the Reporter;
		// the exit code distinguishes a usage mistake (InvalidArgs, above)
		// from an error observed while running source (Failure, here).
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands take a context, a mainer.Stdio and a slice of strings as
// input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
