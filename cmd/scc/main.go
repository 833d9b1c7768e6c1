package main

import (
	"os"

	"github.com/colorscc/scc/cmd/scc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
