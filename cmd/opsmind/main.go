package main

import (
	"os"

	"github.com/opsmind/opsmind/cmd/opsmind/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
