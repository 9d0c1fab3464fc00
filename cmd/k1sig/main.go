package main

import (
	"fmt"
	"os"

	"github.com/ModChain/k1/internal/cli"
)

func main() {
	// Cobra is silenced so that errors are reported once, with their kind.
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.ErrorMessage(err))
		os.Exit(1)
	}
}
