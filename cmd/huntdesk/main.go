// Package main is the entry point for the huntdesk CLI.
package main

import (
	"os"

	"github.com/huntdesk/huntdesk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
