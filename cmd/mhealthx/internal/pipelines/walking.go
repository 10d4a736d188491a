package pipelines

import (
	"context"

	"github.com/mhealthx/extract-cli/internal/featx/gait"
	"github.com/mhealthx/extract-cli/internal/model"
	"github.com/mhealthx/extract-cli/internal/table"
)

// DefaultStart is the number of leading accelerometer samples we skip,
// where the subject is typically still fumbling with the phone.
const DefaultStart = 150

// Walking extracts gait metrics from accelerometer readings: read the
// raw JSON, project it onto an axis, and hand the series to the
// external gait routine.
type Walking struct {
	// Extractor is the MANDATORY gait extractor.
	Extractor model.GaitExtractor

	// Axis selects the acceleration component; empty means vertical.
	Axis gait.Axis

	// Start is the number of leading samples to skip.
	Start int

	// DeviceMotion selects the device-motion JSON format.
	DeviceMotion bool

	// Distance is an optional estimate of the distance traversed.
	Distance float64
}

var _ Pipeline = &Walking{}

// Name implements [Pipeline].
func (w *Walking) Name() string {
	return "walking"
}

// ProcessFile implements [Pipeline].
func (w *Walking) ProcessFile(
	ctx context.Context, ctl *Controller, sourceFile string) (*table.Row, error) {
	reading, err := gait.ReadAccelJSON(sourceFile, w.DeviceMotion)
	if err != nil {
		return nil, err
	}
	axis := w.Axis
	if axis == "" {
		axis = gait.AxisY
	}
	series, err := reading.Series(axis, w.Start)
	if err != nil {
		return nil, err
	}
	params := gait.DefaultParams(series.SampleRate)
	params.Distance = w.Distance
	features, err := w.Extractor.Extract(ctx, series, params)
	if err != nil {
		return nil, err
	}
	return gait.FeaturesRow(features), nil
}
