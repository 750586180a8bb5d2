package main

import (
	"fmt"
	"os"

	"github.com/jaclang-dev/jacc/cmd/jacc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
