package main

import (
	"os"

	"github.com/katalvlaran/hclust/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
