package pipelines

import (
	"context"

	"github.com/mhealthx/extract-cli/internal/featx/audio"
	"github.com/mhealthx/extract-cli/internal/table"
)

// Phonation extracts audio features from voice recordings: convert the
// raw recording to wav, then run the openSMILE extractor on it.
type Phonation struct {
	// Converter is the MANDATORY audio converter.
	Converter *audio.Converter

	// OpenSMILE is the MANDATORY feature extractor.
	OpenSMILE *audio.OpenSMILE
}

var _ Pipeline = &Phonation{}

// Name implements [Pipeline].
func (p *Phonation) Name() string {
	return "phonation"
}

// ProcessFile implements [Pipeline].
func (p *Phonation) ProcessFile(
	ctx context.Context, ctl *Controller, sourceFile string) (*table.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wavFile, err := p.Converter.Convert(sourceFile)
	if err != nil {
		return nil, err
	}
	return p.OpenSMILE.Extract(wavFile)
}
