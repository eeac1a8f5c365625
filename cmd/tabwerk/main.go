package main

import (
	"os"

	"github.com/msto63/tabwerk/cmd/tabwerk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
