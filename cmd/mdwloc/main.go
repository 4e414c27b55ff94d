package main

import (
	"os"

	"github.com/msto63/mdwloc/cmd/mdwloc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
