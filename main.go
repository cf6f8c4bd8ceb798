package main

import (
	"os"

	"github.com/cloudkitchen/dispatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
