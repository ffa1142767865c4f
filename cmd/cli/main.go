package main

import (
	"fmt"
	"os"

	"github.com/de-tools/erate-atlas/pkg/runtime/terminal"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cli := terminal.NewCLI(terminal.Options{
		Output: os.Stdout,
		Logger: logger,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
