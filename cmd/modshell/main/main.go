package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/modshell/cmd/modshell"
	"github.com/arthur-debert/modshell/pkg/output/styles"
)

func main() {
	rootCmd := modshell.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
