package gait

//
// features.go - turning gait metrics into a feature row.
//

import (
	"strconv"

	"github.com/mhealthx/extract-cli/internal/model"
	"github.com/mhealthx/extract-cli/internal/table"
)

// FeaturesRow converts gait metrics into a feature row whose header
// contains the metric names.
func FeaturesRow(features *model.GaitFeatures) *table.Row {
	fls := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	header := []string{
		"number_of_steps",
		"cadence",
		"velocity",
		"avg_step_length",
		"avg_stride_length",
		"avg_step_duration",
		"sd_step_durations",
		"avg_number_of_strides",
		"avg_stride_duration",
		"sd_stride_durations",
		"step_regularity",
		"stride_regularity",
		"symmetry",
		"RMS",
	}
	values := []string{
		strconv.FormatInt(features.NumberOfSteps, 10),
		fls(features.Cadence),
		fls(features.Velocity),
		fls(features.AvgStepLength),
		fls(features.AvgStrideLength),
		fls(features.AvgStepDuration),
		fls(features.SdStepDurations),
		fls(features.AvgNumberOfStrides),
		fls(features.AvgStrideDuration),
		fls(features.SdStrideDurations),
		fls(features.StepRegularity),
		fls(features.StrideRegularity),
		fls(features.Symmetry),
		fls(features.RMS),
	}
	return &table.Row{Header: header, Values: values}
}
