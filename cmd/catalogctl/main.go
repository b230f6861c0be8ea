// catalogctl runs operator maintenance jobs against the catalog document store.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCommand(defaultOpener).Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
