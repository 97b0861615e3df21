package main

import (
	"os"

	"github.com/astrolabsoftware/fink-cli/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
