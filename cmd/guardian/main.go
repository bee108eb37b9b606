package main

import (
	"os"

	"github.com/dshills/guardian/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
