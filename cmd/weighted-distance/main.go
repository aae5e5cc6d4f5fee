// Command weighted-distance computes the population-weighted average driving
// distance from a set of LGAs to one destination.
package main

import (
	"lga-distance/cmd/weighted-distance/cmd"
	"os"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
