package main

import (
	"fmt"
	"os"

	"512b.it/drawday/src/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "drawday:", err)
		os.Exit(1)
	}
}
