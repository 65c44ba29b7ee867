package main

import (
	"os"

	"github.com/amalgam-lang/amalgam/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
