package main

import (
	"os"

	"github.com/layer-3/tidbit/cmd/tidbit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
