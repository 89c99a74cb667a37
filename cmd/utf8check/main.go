package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/harrison/utf8check/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// The report already explains invalid files
		if !errors.Is(err, cmd.ErrInvalidFiles) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
