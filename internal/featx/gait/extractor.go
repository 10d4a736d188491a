package gait

//
// extractor.go - invoking the external gait routine.
//

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mhealthx/extract-cli/internal/model"
	"github.com/mhealthx/extract-cli/internal/shellx"
)

// DefaultParams returns the default tuning parameters for the gait
// routine given the sample rate of the reading.
func DefaultParams(sampleRate float64) *model.GaitParams {
	cutoff := sampleRate / 10
	if cutoff < 1 {
		cutoff = 1
	}
	return &model.GaitParams{
		StrideFraction: 1.0 / 8.0,
		Threshold1:     0.5,
		Threshold2:     0.2,
		Order:          4,
		Cutoff:         cutoff,
	}
}

// extractorRequest is the JSON document we hand to the gait routine.
type extractorRequest struct {
	Series *model.GaitSeries `json:"series"`
	Params *model.GaitParams `json:"params"`
}

// CommandExtractor implements [model.GaitExtractor] by invoking an
// external command. We write the series and the parameters to a JSON
// file, pass its path as the last argument, and parse the metrics the
// command prints on the standard output as JSON.
//
// The zero value is invalid; initialize the MANDATORY fields.
type CommandExtractor struct {
	// Command is the MANDATORY gait routine executable.
	Command string

	// Args contains the OPTIONAL arguments preceding the input path.
	Args []string

	// Logger is the OPTIONAL logger to use.
	Logger model.Logger
}

var _ model.GaitExtractor = &CommandExtractor{}

// Extract implements [model.GaitExtractor].
func (ce *CommandExtractor) Extract(
	ctx context.Context, series *model.GaitSeries, params *model.GaitParams) (*model.GaitFeatures, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	request := &extractorRequest{Series: series, Params: params}
	data, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	dir, err := os.MkdirTemp("", "gait")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	inputFile := filepath.Join(dir, "series.json")
	if err := os.WriteFile(inputFile, data, 0600); err != nil {
		return nil, err
	}
	args := append(append([]string{}, ce.Args...), inputFile)
	logger := model.ValidLoggerOrDefault(ce.Logger)
	output, err := shellx.Output(logger, ce.Command, args...)
	if err != nil {
		return nil, fmt.Errorf("gait: routine failed: %w", err)
	}
	features := &model.GaitFeatures{}
	if err := json.Unmarshal(output, features); err != nil {
		return nil, fmt.Errorf("gait: cannot parse routine output: %w", err)
	}
	features.RMS = RMS(series.Data)
	return features, nil
}
