package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/modshell/cmd/modshell"
	"github.com/arthur-debert/modshell/internal/version"
)

func main() {
	rootCmd := modshell.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MODSHELL",
		Section: "1",
		Source:  "modshell " + version.Version,
		Manual:  "modshell manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
