package audio

//
// opensmile.go - running the openSMILE feature extraction command and
// parsing its output into a feature row.
//

import (
	"fmt"
	"os"

	"github.com/mhealthx/extract-cli/internal/model"
	"github.com/mhealthx/extract-cli/internal/shellx"
	"github.com/mhealthx/extract-cli/internal/table"
)

// Output formats produced by the extractor.
const (
	// FormatCSV means the extractor writes semicolon-separated values.
	FormatCSV = "csv"

	// FormatARFF means the extractor writes an ARFF file.
	FormatARFF = "arff"
)

// OpenSMILE runs the openSMILE audio feature extraction command
// (typically "SMILExtract") on a wav file.
//
// The zero value is invalid; initialize the MANDATORY fields.
type OpenSMILE struct {
	// Command is the MANDATORY extractor executable (e.g., "SMILExtract").
	Command string

	// InputFlag is the MANDATORY flag preceding the input file (e.g., "-I").
	InputFlag string

	// ConfigArgs contains the MANDATORY flags and arguments selecting
	// the feature configuration (e.g., ["-C", "IS13_ComParE.conf"]).
	ConfigArgs []string

	// OutputFlag is the MANDATORY flag preceding the output file
	// (e.g., "-csvoutput" or "-O").
	OutputFlag string

	// Closing contains the OPTIONAL closing arguments
	// (e.g., ["-nologfile", "1"]).
	Closing []string

	// Format is the output format: [FormatCSV] (the default when
	// empty) or [FormatARFF].
	Format string

	// Logger is the OPTIONAL logger to use.
	Logger model.Logger
}

// OutputPath returns the path where the extractor writes the features
// for the given audio file: the input path plus ".csv" or ".arff".
func (sm *OpenSMILE) OutputPath(audioFile string) string {
	switch sm.Format {
	case FormatARFF:
		return audioFile + ".arff"
	default:
		return audioFile + ".csv"
	}
}

// Extract runs the extractor on the given audio file and parses the
// produced output into a feature row. The output file is left on disk
// next to the input file.
func (sm *OpenSMILE) Extract(audioFile string) (*table.Row, error) {
	if _, err := os.Stat(audioFile); err != nil {
		return nil, err
	}

	outputFile := sm.OutputPath(audioFile)
	args := []string{}
	args = append(args, sm.InputFlag, audioFile)
	args = append(args, sm.ConfigArgs...)
	args = append(args, sm.OutputFlag, outputFile)
	args = append(args, sm.Closing...)
	logger := model.ValidLoggerOrDefault(sm.Logger)
	if err := shellx.Run(logger, sm.Command, args...); err != nil {
		return nil, fmt.Errorf("audio: extractor failed: %w", err)
	}

	switch sm.Format {
	case FormatARFF:
		return table.ParseARFF(outputFile)
	default:
		tbl, err := table.ReadCSV(outputFile, ';')
		if err != nil {
			return nil, err
		}
		return tbl.FirstRow()
	}
}
