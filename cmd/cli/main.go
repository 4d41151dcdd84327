package main

import (
	"os"

	"github.com/openpdfa/openpdfa/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
