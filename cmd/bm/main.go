package main

import (
	"os"

	"github.com/bnema/brand-manager-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
