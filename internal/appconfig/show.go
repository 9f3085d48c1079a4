package appconfig

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp"
)

// ShowConfig prints the config file in use and the merged configuration.
func ShowConfig(out io.Writer, file string, cfg any) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}
	fmt.Fprintln(out, "Current configuration:")
	_, _ = pp.Fprintln(out, cfg)
}
