package main

import (
	"os"

	"github.com/spacesweep-dev/spacesweep/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
