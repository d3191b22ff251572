package main

import (
	"os"

	"github.com/wonny/fundquant/cmd/fundquant/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
