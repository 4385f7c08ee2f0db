// Command chartkit renders chart files to PNG frames.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/go-drift/chart/cmd/chartkit/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
