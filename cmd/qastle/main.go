// Command qastle translates between query AST language text and
// expression trees.
package main

import (
	"fmt"
	"os"

	"github.com/iris-hep/qastle/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
