package main

import (
	"os"

	"github.com/kode4food/testgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
