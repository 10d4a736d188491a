package model

//
// Gait extraction contract.
//
// The heel-strike detection and gait-metric math lives in an external
// helper (invoked as a command line tool); this repository only defines
// the call surface and reassembles the returned metrics into rows.
//

import "context"

// GaitParams are the tuning parameters forwarded to the gait extractor.
type GaitParams struct {
	// StrideFraction is the fraction of a stride assumed to be the
	// deceleration phase of the primary leg.
	StrideFraction float64 `json:"stride_fraction"`

	// Threshold1 is the ratio to the maximum summed acceleration
	// used to extract peaks.
	Threshold1 float64 `json:"threshold1"`

	// Threshold2 is the ratio to the maximum value of the
	// anterior-posterior acceleration.
	Threshold2 float64 `json:"threshold2"`

	// Order is the order of the Butterworth filter.
	Order int `json:"order"`

	// Cutoff is the cutoff frequency of the Butterworth filter (Hz).
	Cutoff float64 `json:"cutoff"`

	// Distance is an optional estimate of the distance traversed;
	// zero means unknown.
	Distance float64 `json:"distance,omitempty"`
}

// GaitSeries is the accelerometer time series handed to the extractor.
type GaitSeries struct {
	// Data contains acceleration samples along the walking axis.
	Data []float64 `json:"data"`

	// Timestamps contains one time point per sample (s).
	Timestamps []float64 `json:"timestamps"`

	// SampleRate is the sample rate of the reading (Hz).
	SampleRate float64 `json:"sample_rate"`

	// Duration is the duration of the reading (s).
	Duration float64 `json:"duration"`
}

// GaitFeatures are the metrics computed by the gait extractor, plus the
// RMS that we compute locally.
type GaitFeatures struct {
	NumberOfSteps      int64   `json:"number_of_steps"`
	Cadence            float64 `json:"cadence"`
	Velocity           float64 `json:"velocity"`
	AvgStepLength      float64 `json:"avg_step_length"`
	AvgStrideLength    float64 `json:"avg_stride_length"`
	AvgStepDuration    float64 `json:"avg_step_duration"`
	SdStepDurations    float64 `json:"sd_step_durations"`
	AvgNumberOfStrides float64 `json:"avg_number_of_strides"`
	AvgStrideDuration  float64 `json:"avg_stride_duration"`
	SdStrideDurations  float64 `json:"sd_stride_durations"`
	StepRegularity     float64 `json:"step_regularity"`
	StrideRegularity   float64 `json:"stride_regularity"`
	Symmetry           float64 `json:"symmetry"`
	RMS                float64 `json:"RMS"`
}

// GaitExtractor extracts gait metrics from an accelerometer series.
type GaitExtractor interface {
	// Extract runs the external gait routine on the given series.
	Extract(ctx context.Context, series *GaitSeries, params *GaitParams) (*GaitFeatures, error)
}
