// cmd/afplotter/main.go
package main

import (
	"github.com/mwiater/afplotter/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main plots pLDDT and PAE for the confidence files named on the command line.
func main() {
	cli.SetVersionInfo(version, commit, date)
	cli.ExecutePlotter()
}
