package main

import (
	"fmt"
	"os"

	"github.com/Makepad-fr/tada/internal/cli"
)

func main() {
	// Hand the args to the CLI runner; it owns flags and subcommands.
	code := cli.Run(os.Args[1:], cli.Options{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
