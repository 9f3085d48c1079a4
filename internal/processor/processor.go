// Package processor turns confidence files into pLDDT and PAE plots.
package processor

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/mwiater/afplotter/internal/appconfig"
	"github.com/mwiater/afplotter/internal/confidence"
	"github.com/mwiater/afplotter/internal/discover"
	"github.com/mwiater/afplotter/internal/logging"
	"github.com/mwiater/afplotter/internal/plot"
)

// Processor renders plots for confidence files read from and written to Fs.
type Processor struct {
	fs  afero.Fs
	cfg appconfig.PlotConfig
}

// New returns a Processor bound to fs and cfg.
func New(fs afero.Fs, cfg appconfig.PlotConfig) *Processor {
	return &Processor{fs: fs, cfg: cfg}
}

// Run resolves the configured targets and processes each file in order,
// stopping at the first error. It returns every plot written.
func (p *Processor) Run() ([]string, error) {
	files, err := discover.Resolve(p.fs, p.cfg.TargetPaths(), discover.Options{
		Glob:      p.cfg.GlobPattern(),
		Recursive: p.cfg.Recursive,
	})
	if err != nil {
		return nil, err
	}
	logging.LogDebug("resolved %d file(s) from %v", len(files), p.cfg.TargetPaths())

	var written []string
	for _, file := range files {
		outs, err := p.ProcessFile(file)
		written = append(written, outs...)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// ProcessFile plots a single file. Files that are not confidence records are
// skipped without error; malformed records are reported.
func (p *Processor) ProcessFile(path string) ([]string, error) {
	rec, err := confidence.Load(p.fs, path)
	if errors.Is(err, confidence.ErrNotConfidenceRecord) {
		logging.LogDebug("skipping %s: %v", path, err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	logging.LogDebug("%s: %d atom chain segment(s), %d token chain segment(s)",
		path, len(rec.AtomSegments()), len(rec.TokenSegments()))

	naming := plot.Naming{Source: path, OutputDir: p.cfg.OutputDir(), Glob: p.cfg.GlobPattern()}
	var written []string
	if p.cfg.PLDDTEnabled() {
		out, err := plot.PLDDT(p.fs, rec.AtomPLDDTs, rec.AtomChainIDs, naming)
		if err != nil {
			return written, fmt.Errorf("%s: %w", path, err)
		}
		logging.LogFileEvent("wrote", out, nil)
		written = append(written, out)
	}
	if p.cfg.PAEEnabled() {
		out, err := plot.PAE(p.fs, rec.PAE, rec.TokenChainIDs, naming)
		if err != nil {
			return written, fmt.Errorf("%s: %w", path, err)
		}
		logging.LogFileEvent("wrote", out, nil)
		written = append(written, out)
	}
	return written, nil
}
