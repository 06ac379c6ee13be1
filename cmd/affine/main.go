// Package main provides the affine bijector CLI.
package main

import (
	"fmt"
	"os"

	"github.com/born-ml/probability/cmd/affine/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
