// Package audio invokes the external audio tools: the converter that
// turns raw voice recordings into wav files and the openSMILE feature
// extractor that turns wav files into feature rows.
package audio

import (
	"os"

	"github.com/mhealthx/extract-cli/internal/model"
	"github.com/mhealthx/extract-cli/internal/shellx"
)

// Converter converts an audio file to another format by invoking an
// external command (typically ffmpeg).
//
// The zero value is invalid; initialize the MANDATORY fields.
type Converter struct {
	// Command is the MANDATORY converter executable (e.g., "ffmpeg").
	Command string

	// InputArgs contains the OPTIONAL arguments preceding the input
	// file name (e.g., ["-y", "-i"]).
	InputArgs []string

	// OutputArgs contains the OPTIONAL arguments preceding the output
	// file name (e.g., ["-ac", "2"]).
	OutputArgs []string

	// AppendExt is the MANDATORY extension appended to the input file
	// name to form the output file name (e.g., ".wav").
	AppendExt string

	// Logger is the OPTIONAL logger to use.
	Logger model.Logger
}

// Convert converts the given audio file and returns the path of the
// converted file, which is the input path plus [Converter.AppendExt].
func (c *Converter) Convert(audioFile string) (string, error) {
	if _, err := os.Stat(audioFile); err != nil {
		return "", err
	}
	outputFile := audioFile + c.AppendExt
	args := []string{}
	args = append(args, c.InputArgs...)
	args = append(args, audioFile)
	args = append(args, c.OutputArgs...)
	args = append(args, outputFile)
	if err := shellx.Run(model.ValidLoggerOrDefault(c.Logger), c.Command, args...); err != nil {
		return "", err
	}
	return outputFile, nil
}
