package main

import (
	"os"

	"github.com/slate-lang/slate/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
