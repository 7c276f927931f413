// Package main is the leapnodes command.
package main

import (
	"os"

	"github.com/leapstack-labs/leapnodes/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
