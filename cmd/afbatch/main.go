// cmd/afbatch/main.go
package main

import (
	"github.com/mwiater/afplotter/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main runs the plotter over every AlphaFold3 output directory under a root.
func main() {
	cli.SetVersionInfo(version, commit, date)
	cli.ExecuteBatch()
}
