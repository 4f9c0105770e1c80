package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/harrison/fileset-compare/internal/cmd"
	"github.com/harrison/fileset-compare/internal/models"
)

// Exit codes
const (
	exitFailure     = 1
	exitConfigError = 2
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var cfgErr *models.ConfigError
		if errors.As(err, &cfgErr) {
			os.Exit(exitConfigError)
		}
		os.Exit(exitFailure)
	}
}
