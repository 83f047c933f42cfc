package main

import (
	"os"

	"github.com/futureintern/platform/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
