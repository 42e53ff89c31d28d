package main

import (
	"fmt"
	"os"

	"github.com/hugo/focustrack/internal/cli"
	"github.com/hugo/focustrack/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.New()
	return cli.NewRootCmd(cfg).Execute()
}
