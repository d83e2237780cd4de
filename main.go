package main

import (
	"os"

	"github.com/DRNaser/shift-optimizer-sub007/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
