// entry point

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"

	"github.com/skx/dosk/dos"
	"github.com/skx/dosk/version"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitUnsupported = 86
)

// usage is shown when we're given no, or an unknown, sub-command.
const usage = `Usage: dosk <command> [flags] [args]

Commands:
  int    [flags] 21 ax=4e00 cx=0 dx='"*.c"'   Run one dispatch.
  run    [flags] script.lua                   Run a Lua script.
  run    -builtin name | -list                Run, or list, a built-in script.
  repl   [flags]                              Read Lua interactively.
  trace  dump [-color] file                   Show a recorded trace.
  version                                     Show our version.
`

func main() {
	os.Exit(run(os.Args[1:], colorable.NewColorableStdout(), os.Stderr))
}

// run invokes the sub-command named in args, returning the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "int":
		err = intCmd(args[1:], stdout, stderr)
	case "run":
		err = runCmd(args[1:], stdout, stderr)
	case "repl":
		err = replCmd(args[1:], stdout, stderr)
	case "trace":
		err = traceCmd(args[1:], stdout)
	case "version":
		fmt.Fprint(stdout, version.GetVersionBanner())
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprint(stderr, usage)
		return exitUsage
	case errors.Is(err, dos.ErrUnimplemented):
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitUnsupported
	}
	fmt.Fprintf(stderr, "Error: %s\n", err)
	return exitFailure
}
