package main

import (
	"os"

	"github.com/alovak/cardflow-swipe/cmd/magstripe/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
