package main

import (
	"fmt"
	"os"

	"github.com/typelint/typelint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
