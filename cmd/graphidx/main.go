// Command graphidx builds a knowledge index from a directory of documents.
package main

import (
	"os"

	"github.com/custodia-labs/graphidx/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
