// Package main provides the dump2tsv command.
package main

import (
	"os"

	"github.com/leapstack-labs/dump2tsv/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
