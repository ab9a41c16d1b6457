package main

import (
	"os"

	"github.com/arthur-debert/genout/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
