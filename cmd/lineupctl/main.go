// Command lineupctl plans quarter lineups from a roster CSV without running
// the HTTP service.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
