package main

import (
	"os"

	"github.com/macshift/macshift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
