package main

import (
	"os"

	"github.com/routegate/routegate/cmd/routegate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
