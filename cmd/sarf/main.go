// Command sarf serves the Arabic grammar explorer and exposes its lexical
// tools on the command line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ZaguanLabs/sarf"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = sarf.Version
	commit    = sarf.GitCommit
	buildDate = sarf.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	return root.Execute()
}
