// Command points_checker checks Meteora points from the terminal.
package main

import (
	"errors"
	"os"

	"points_checker/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if errors.Is(err, cli.ErrInterrupted) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
