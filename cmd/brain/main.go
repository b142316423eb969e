// Package main is the entry point for the brain CLI tool.
package main

import (
	"os"

	"github.com/keeponfirst/localbrain/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
