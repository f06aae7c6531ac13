package main

import (
	"fmt"
	"os"

	"worker/internal/cli"
)

func main() {
	// The API is opened by the root command once flags are parsed
	root := cli.NewRootCommand(nil)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
