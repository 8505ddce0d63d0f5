package main

import (
	"fmt"
	"os"

	"github.com/jonesrussell/pagesense/cmd"
	"github.com/jonesrussell/pagesense/cmd/common"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(common.ExitError)
	}
}
