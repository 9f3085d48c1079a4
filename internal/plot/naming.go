// Package plot renders pLDDT and PAE diagnostic plots as PNG files.
package plot

import (
	"path/filepath"
	"strings"
)

const (
	// PLDDTSuffix is appended to the output stem of pLDDT plots.
	PLDDTSuffix = "PLDDT.png"
	// PAESuffix is appended to the output stem of PAE heatmaps.
	PAESuffix = "PAE.png"
)

// Naming carries the context used to derive output file names.
type Naming struct {
	// Source is the confidence file being plotted.
	Source string
	// OutputDir is the directory the PNG is written to.
	OutputDir string
	// Glob is the search pattern that selected Source.
	Glob string
}

// Path returns the output path for a plot with the given suffix.
func (n Naming) Path(suffix string) string {
	return filepath.Join(n.OutputDir, OutputStem(n.Source, n.Glob)+suffix)
}

// OutputStem derives the output file stem from a source path and the glob
// that matched it. The glob's literal text, minus wildcards and minus the
// source's extension, is removed from the end of the source stem, along with
// at most one separator left dangling. Stems that do not end with the literal
// are returned whole.
//
//	OutputStem("run/model_x_confidences.json", "*confidences.json") == "model_x"
func OutputStem(source, glob string) string {
	base := filepath.Base(source)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	literal := strings.NewReplacer("*", "", "?", "").Replace(glob)
	literal = strings.TrimSuffix(literal, ext)
	if literal == "" || !strings.HasSuffix(stem, literal) {
		return stem
	}
	stem = strings.TrimSuffix(stem, literal)
	for _, sep := range []string{"_", "-", "."} {
		if trimmed, ok := strings.CutSuffix(stem, sep); ok {
			return trimmed
		}
	}
	return stem
}
