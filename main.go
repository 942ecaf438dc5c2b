package main

import (
	"os"

	"github.com/druskus20/bageri/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
