package main

import (
	"os"

	"github.com/moltstreet/mstctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
