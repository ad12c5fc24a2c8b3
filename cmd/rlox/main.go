package main

import (
	"os"

	"github.com/jasedbrown/rlox/internal/maincmd"
	"github.com/mna/mainer"
)

var (
	// placeholder values, replaced on build
	version   = "{v}" // must be N.N[.N]
	buildDate = "{d}" // must be YYYY-mm-DD
)

func main() {
	c := maincmd.Cmd{BuildVersion: version, BuildDate: buildDate}
	// map mainer's exit codes to 0 (success), 64 (usage error) and 65
	// (error observed while running source).
	switch c.Main(os.Args, mainer.CurrentStdio()) {
	case mainer.Success:
		os.Exit(0)
	case mainer.InvalidArgs:
		os.Exit(64)
	default:
		os.Exit(65)
	}
}
