package main

import (
	"os"

	"github.com/CertiKProject/findmerge/cmd/findmerge/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(2)
	}
}
